package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// VideoBatchSize is the videos.list id limit imposed by the Data API.
const VideoBatchSize = 50

// VideoListing is a channel catalog plus the bookkeeping needed to spot gaps.
type VideoListing struct {
	Videos        []engine.Video `json:"videos"`
	Requested     int            `json:"requested"`      // ids collected from the uploads playlist (after cap)
	Missing       int            `json:"missing"`        // requested ids with no detail row
	Batches       []int          `json:"batches"`        // size of every detail request issued
	FailedBatches int            `json:"failed_batches"`
}

// Catalog resolves channels and builds their video catalog.
type Catalog struct {
	platform Platform
}

// NewCatalog creates a catalog builder over p.
func NewCatalog(p Platform) *Catalog {
	return &Catalog{platform: p}
}

// Resolve looks up a channel's uploads playlist and title.
// Repeated calls for the same id return the same channel (cached within TTL).
func (c *Catalog) Resolve(ctx context.Context, channelID string) (engine.Channel, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return engine.Channel{}, &engine.ValidationError{Field: "channel_id", Reason: "required"}
	}

	key := engine.CacheKey("channel", channelID)
	if ch, ok := engine.CacheLoadJSON[engine.Channel](ctx, key); ok {
		return ch, nil
	}

	ch, err := c.platform.Channel(ctx, channelID)
	if err != nil {
		return engine.Channel{}, err
	}
	engine.CacheStoreJSON(ctx, key, ch)
	return ch, nil
}

// ListVideos collects up to limit videos from an uploads playlist.
//
// IDs are paged first, then details are fetched in batches of VideoBatchSize.
// A failed batch does not stop the others; the listing comes back with a
// *engine.PartialCollectionError describing the gap. Order follows the API.
func (c *Catalog) ListVideos(ctx context.Context, uploadsRef string, limit int) (VideoListing, error) {
	if uploadsRef == "" {
		return VideoListing{}, &engine.ValidationError{Field: "uploads_ref", Reason: "required"}
	}
	if limit <= 0 {
		limit = engine.Cfg.VideoCap
	}
	if limit <= 0 {
		limit = engine.DefaultVideoCap
	}

	key := engine.CacheKey("videos", uploadsRef, strconv.Itoa(limit))
	if cached, ok := engine.CacheLoadJSON[VideoListing](ctx, key); ok {
		return cached, nil
	}

	ids, err := CollectPages(ctx, func(ctx context.Context, cursor string) (Page[string], error) {
		return c.platform.PlaylistVideoIDs(ctx, uploadsRef, cursor)
	}, limit)

	var errs []error
	if err != nil {
		if len(ids) == 0 {
			return VideoListing{}, fmt.Errorf("list uploads %s: %w", uploadsRef, err)
		}
		slog.Warn("catalog: uploads paging stopped early",
			slog.String("playlist", uploadsRef), slog.Int("ids", len(ids)), slog.Any("error", err))
		errs = append(errs, fmt.Errorf("playlist items: %w", err))
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	listing := VideoListing{Requested: len(ids)}
	for start := 0; start < len(ids); start += VideoBatchSize {
		end := min(start+VideoBatchSize, len(ids))
		batch := ids[start:end]
		listing.Batches = append(listing.Batches, len(batch))

		videos, err := c.platform.Videos(ctx, batch)
		if err != nil {
			listing.FailedBatches++
			engine.IncrDetailBatchFailed()
			slog.Warn("catalog: detail batch failed",
				slog.Int("from", start), slog.Int("to", end), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("videos %d-%d: %w", start, end, err))
			continue
		}
		listing.Videos = append(listing.Videos, videos...)
	}
	listing.Missing = listing.Requested - len(listing.Videos)

	if len(errs) > 0 {
		return listing, &engine.PartialCollectionError{
			Op:        "video catalog",
			Requested: listing.Requested,
			Collected: len(listing.Videos),
			Failed:    listing.FailedBatches,
			Errs:      errs,
		}
	}
	if listing.Missing > 0 {
		slog.Info("catalog: some videos returned no details",
			slog.String("playlist", uploadsRef), slog.Int("missing", listing.Missing))
	}
	engine.CacheStoreJSON(ctx, key, listing)
	return listing, nil
}
