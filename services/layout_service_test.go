package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/storage"
)

func fourPlayerKnockout() []models.KnockoutMatch {
	return brackets.NewSingleEliminationGenerator().GenerateBracket(brackets.GenerateParams{
		Competitors: roster("a", "b", "c", "d"),
		Source:      brackets.NoShuffle,
	}).Knockout
}

func TestLayoutService_ComputeLayout(t *testing.T) {
	svc := NewLayoutService(nil, discardLogger(), nil)

	layout, err := svc.ComputeLayout(context.Background(), LayoutInput{Knockout: fourPlayerKnockout()})
	require.NoError(t, err)
	require.Len(t, layout.Nodes, 3)
	assert.Len(t, layout.Edges, 2)
	for _, n := range layout.Nodes {
		assert.GreaterOrEqual(t, n.Y, DefaultTopLeft.Y)
		assert.LessOrEqual(t, n.Y, DefaultBottomRight.Y)
	}

	_, err = svc.ComputeLayout(context.Background(), LayoutInput{
		Knockout:    fourPlayerKnockout(),
		TopLeft:     &models.Point{X: 5, Y: 5},
		BottomRight: &models.Point{X: 5, Y: 100},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLayoutService_PublishAndFetch(t *testing.T) {
	ctx := context.Background()
	store := NewFakeSnapshotStore()
	svc := NewLayoutService(store, discardLogger(), nil)

	published, err := svc.PublishLayout(ctx, "spring-open", LayoutInput{Knockout: fourPlayerKnockout()})
	require.NoError(t, err)
	assert.Equal(t, "layouts/spring-open/latest.json", published.Latest.Key)
	assert.True(t, strings.HasPrefix(published.Snapshot.Key, "layouts/spring-open/"))
	assert.Len(t, store.Keys(), 2)

	fetched, err := svc.GetPublishedLayout(ctx, "spring-open")
	require.NoError(t, err)
	assert.Equal(t, published.Layout, fetched)

	_, err = svc.GetPublishedLayout(ctx, "autumn-open")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLayoutService_PublishErrors(t *testing.T) {
	ctx := context.Background()
	in := LayoutInput{Knockout: fourPlayerKnockout()}

	_, err := NewLayoutService(nil, discardLogger(), nil).PublishLayout(ctx, "k", in)
	assert.ErrorIs(t, err, ErrSnapshotStoreDisabled)

	_, err = NewLayoutService(nil, discardLogger(), nil).GetPublishedLayout(ctx, "k")
	assert.ErrorIs(t, err, ErrSnapshotStoreDisabled)

	_, err = NewLayoutService(NewFakeSnapshotStore(), discardLogger(), nil).PublishLayout(ctx, "  ", in)
	assert.ErrorIs(t, err, ErrValidationFailed)

	failing := NewFakeSnapshotStore()
	uploadErr := errors.New("bucket unavailable")
	failing.UploadFunc = func(context.Context, string, string, io.Reader) (*storage.UploadResult, error) {
		return nil, uploadErr
	}
	_, err = NewLayoutService(failing, discardLogger(), nil).PublishLayout(ctx, "k", in)
	assert.ErrorIs(t, err, uploadErr)
}
