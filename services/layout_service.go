package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/metrics"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/storage"
)

// Box used when the caller gives no bounding box.
var (
	DefaultTopLeft     = models.Point{X: 0, Y: 0}
	DefaultBottomRight = models.Point{X: 1200, Y: 800}
)

type LayoutService interface {
	ComputeLayout(ctx context.Context, input LayoutInput) (*brackets.Layout, error)
	PublishLayout(ctx context.Context, tournamentKey string, input LayoutInput) (*PublishedLayout, error)
	GetPublishedLayout(ctx context.Context, tournamentKey string) (*brackets.Layout, error)
}

type LayoutInput struct {
	Knockout    []models.KnockoutMatch `json:"knockout"`
	TopLeft     *models.Point          `json:"top_left,omitempty"`
	BottomRight *models.Point          `json:"bottom_right,omitempty"`
}

type PublishedLayout struct {
	Layout   *brackets.Layout      `json:"layout"`
	Snapshot *storage.UploadResult `json:"snapshot"`
	Latest   *storage.UploadResult `json:"latest"`
}

type layoutService struct {
	store   storage.SnapshotStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewLayoutService accepts a nil store; publishing then fails with ErrSnapshotStoreDisabled.
func NewLayoutService(store storage.SnapshotStore, logger *slog.Logger, rec metrics.Recorder) LayoutService {
	return &layoutService{
		store:   store,
		logger:  logger,
		metrics: orNoop(rec),
	}
}

func (s *layoutService) ComputeLayout(ctx context.Context, input LayoutInput) (layout *brackets.Layout, err error) {
	defer observe(s.metrics, "compute_layout", time.Now(), &err)

	topLeft, bottomRight := DefaultTopLeft, DefaultBottomRight
	if input.TopLeft != nil {
		topLeft = *input.TopLeft
	}
	if input.BottomRight != nil {
		bottomRight = *input.BottomRight
	}
	if topLeft.X == bottomRight.X || topLeft.Y == bottomRight.Y {
		return nil, fmt.Errorf("%w: bounding box has no area", ErrValidationFailed)
	}

	computed := brackets.ComputePositions(topLeft, bottomRight, brackets.GroupByLevel(input.Knockout))
	return &computed, nil
}

func (s *layoutService) PublishLayout(ctx context.Context, tournamentKey string, input LayoutInput) (published *PublishedLayout, err error) {
	defer observe(s.metrics, "publish_layout", time.Now(), &err)

	if s.store == nil {
		return nil, ErrSnapshotStoreDisabled
	}
	if strings.TrimSpace(tournamentKey) == "" {
		return nil, fmt.Errorf("%w: tournament key is required", ErrValidationFailed)
	}

	layout, err := s.ComputeLayout(ctx, input)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}

	versionedKey, latestKey := storage.LayoutKeys(tournamentKey)
	snapshot, err := s.store.Upload(ctx, versionedKey, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upload layout snapshot", slog.String("key", versionedKey), slog.Any("error", err))
		return nil, err
	}
	latest, err := s.store.Upload(ctx, latestKey, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update latest layout", slog.String("key", latestKey), slog.Any("error", err))
		return nil, err
	}

	s.metrics.SnapshotsPublished()
	s.logger.InfoContext(ctx, "layout published",
		slog.String("tournament", tournamentKey),
		slog.String("key", snapshot.Key),
		slog.Int("nodes", len(layout.Nodes)))

	return &PublishedLayout{Layout: layout, Snapshot: snapshot, Latest: latest}, nil
}

func (s *layoutService) GetPublishedLayout(ctx context.Context, tournamentKey string) (layout *brackets.Layout, err error) {
	defer observe(s.metrics, "get_published_layout", time.Now(), &err)

	if s.store == nil {
		return nil, ErrSnapshotStoreDisabled
	}

	_, latestKey := storage.LayoutKeys(tournamentKey)
	data, err := s.store.Download(ctx, latestKey)
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("%w: no layout published for %q", ErrNotFound, tournamentKey)
		}
		return nil, err
	}

	layout = &brackets.Layout{}
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to decode layout snapshot %s: %w", latestKey, err)
	}
	return layout, nil
}
