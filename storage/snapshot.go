package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag"`
}

// SnapshotStore keeps published bracket layouts as objects.
type SnapshotStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Download returns ErrSnapshotNotFound when the key does not exist.
	Download(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// LayoutKeys returns a fresh versioned key and the stable "latest" key for a tournament.
func LayoutKeys(tournamentKey string) (versioned, latest string) {
	prefix := "layouts/" + url.PathEscape(strings.TrimSpace(tournamentKey))
	return fmt.Sprintf("%s/%s.json", prefix, uuid.NewString()), prefix + "/latest.json"
}

// publicURL joins a public base URL and an object key.
func publicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	return baseURL.JoinPath(strings.TrimPrefix(key, "/")).String()
}
