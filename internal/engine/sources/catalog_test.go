package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	f := newFakePlatform(3, time.Now())
	cat := NewCatalog(f)

	ch, err := cat.Resolve(context.Background(), "  UC1 ")
	require.NoError(t, err)
	assert.Equal(t, "UU1", ch.UploadsRef)
	assert.Equal(t, "Demo", ch.Title)

	again, err := cat.Resolve(context.Background(), "UC1")
	require.NoError(t, err)
	assert.Equal(t, ch, again)
}

func TestResolve_Errors(t *testing.T) {
	cat := NewCatalog(newFakePlatform(0, time.Now()))

	_, err := cat.Resolve(context.Background(), "UCmissing")
	assert.ErrorIs(t, err, engine.ErrChannelNotFound)

	_, err = cat.Resolve(context.Background(), "   ")
	var ve *engine.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestListVideos_Batches(t *testing.T) {
	tests := []struct {
		name        string
		uploads     int
		limit       int
		wantVideos  int
		wantBatches []int
	}{
		{"120 uploads", 120, 1000, 120, []int{50, 50, 20}},
		{"exact batch", 50, 1000, 50, []int{50}},
		{"cap truncates", 120, 60, 60, []int{50, 10}},
		{"small channel", 3, 1000, 3, []int{3}},
		{"no uploads", 0, 1000, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakePlatform(tt.uploads, time.Now())
			listing, err := NewCatalog(f).ListVideos(context.Background(), "UU1", tt.limit)
			require.NoError(t, err)
			assert.Len(t, listing.Videos, tt.wantVideos)
			assert.Equal(t, tt.wantBatches, listing.Batches)
			assert.Equal(t, tt.wantBatches, f.batchSizes)
			assert.Equal(t, tt.wantVideos, listing.Requested)
			assert.Zero(t, listing.Missing)
			for _, n := range f.batchSizes {
				assert.LessOrEqual(t, n, VideoBatchSize)
			}
		})
	}
}

func TestListVideos_OrderPreserved(t *testing.T) {
	f := newFakePlatform(75, time.Now())
	listing, err := NewCatalog(f).ListVideos(context.Background(), "UU1", 0)
	require.NoError(t, err)
	for i, v := range listing.Videos {
		assert.Equal(t, f.videos[i].ID, v.ID)
	}
}

func TestListVideos_FailedBatch(t *testing.T) {
	f := newFakePlatform(120, time.Now())
	f.failBatch[1] = true

	listing, err := NewCatalog(f).ListVideos(context.Background(), "UU1", 1000)
	var pe *engine.PartialCollectionError
	require.ErrorAs(t, err, &pe)

	assert.Equal(t, []int{50, 50, 20}, listing.Batches, "remaining batches still issued")
	assert.Len(t, listing.Videos, 70)
	assert.Equal(t, 1, listing.FailedBatches)
	assert.Equal(t, 50, listing.Missing)
	assert.Equal(t, 120, pe.Requested)
	assert.Equal(t, 70, pe.Collected)
}

func TestListVideos_NoUploadsRef(t *testing.T) {
	_, err := NewCatalog(newFakePlatform(1, time.Now())).ListVideos(context.Background(), "", 10)
	var ve *engine.ValidationError
	assert.True(t, errors.As(err, &ve))
}
