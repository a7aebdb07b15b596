package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	putErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestR2SnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjectAPI()
	store := newR2SnapshotStore(api, "brackets", "https://cdn.example.com")

	res, err := store.Upload(ctx, "layouts/spring/latest.json", "application/json", strings.NewReader(`{"nodes":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/layouts/spring/latest.json", res.Location)

	data, err := store.Download(ctx, "layouts/spring/latest.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[]}`, string(data))

	require.NoError(t, store.Delete(ctx, "layouts/spring/latest.json"))
	_, err = store.Download(ctx, "layouts/spring/latest.json")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestR2SnapshotStore_UploadError(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("connection reset")
	store := newR2SnapshotStore(api, "brackets", "https://cdn.example.com")

	_, err := store.Upload(context.Background(), "k", "application/json", strings.NewReader("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key: k")
}

func TestNewCloudflareR2Store_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Store(context.Background(), CloudflareR2Config{AccountID: "acc"})
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "a/b.json", "https://cdn.example.com/a/b.json"},
		{"https://cdn.example.com/", "/a/b.json", "https://cdn.example.com/a/b.json"},
		{"https://cdn.example.com/brackets", "a.json", "https://cdn.example.com/brackets/a.json"},
		{"", "a.json", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, publicURL(tt.base, tt.key), "base=%q key=%q", tt.base, tt.key)
	}
}

func TestLayoutKeys(t *testing.T) {
	v1, latest := LayoutKeys("spring-open")
	v2, _ := LayoutKeys("spring-open")

	assert.Equal(t, "layouts/spring-open/latest.json", latest)
	assert.True(t, strings.HasPrefix(v1, "layouts/spring-open/"))
	assert.True(t, strings.HasSuffix(v1, ".json"))
	assert.NotEqual(t, v1, v2)
}
