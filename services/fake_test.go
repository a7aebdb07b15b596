package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-engine/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeSnapshotStore keeps objects in memory. Set a Func field to override a method.
type FakeSnapshotStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	UploadFunc   func(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error)
	DownloadFunc func(ctx context.Context, key string) ([]byte, error)
}

func NewFakeSnapshotStore() *FakeSnapshotStore {
	return &FakeSnapshotStore{objects: map[string][]byte{}}
}

func (f *FakeSnapshotStore) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, key, contentType, reader)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *FakeSnapshotStore) Download(ctx context.Context, key string) ([]byte, error) {
	if f.DownloadFunc != nil {
		return f.DownloadFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrSnapshotNotFound
	}
	return data, nil
}

func (f *FakeSnapshotStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *FakeSnapshotStore) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *FakeSnapshotStore) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys
}
