package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// ProgressFunc receives (videos processed, qualifying videos) after each video.
type ProgressFunc func(done, total int)

// CommentSet is the outcome of one comment collection.
type CommentSet struct {
	Comments   []engine.Comment `json:"comments"`
	WindowDays int              `json:"window_days"`
	Qualifying int              `json:"qualifying_videos"`
	Skipped    []string         `json:"skipped_videos,omitempty"`
}

// CommentCollector gathers recent top-level comments.
type CommentCollector struct {
	platform Platform
	now      func() time.Time
}

// NewCommentCollector creates a collector over p.
func NewCommentCollector(p Platform) *CommentCollector {
	return &CommentCollector{platform: p, now: time.Now}
}

// RecentVideos keeps videos published at or after cutoff.
func RecentVideos(videos []engine.Video, cutoff time.Time) []engine.Video {
	var out []engine.Video
	for _, v := range videos {
		if !v.PublishedAt.Before(cutoff) {
			out = append(out, v)
		}
	}
	return out
}

// ValidateWindow checks a recency window in days.
func ValidateWindow(days int) error {
	if days < engine.MinWindowDays || days > engine.MaxWindowDays {
		return &engine.ValidationError{
			Field:  "window_days",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", engine.MinWindowDays, engine.MaxWindowDays, days),
		}
	}
	return nil
}

// Collect fetches comments for the videos published within the last
// windowDays. The window applies to the video's publish date, not the
// comment's.
//
// Videos are processed one at a time, each paged to completion. A video whose
// comments fail to load is dropped entirely and listed in Skipped; the set is
// then returned with a *engine.PartialCollectionError. Comments written by
// excludeAuthor (the channel itself) are left out.
func (c *CommentCollector) Collect(ctx context.Context, videos []engine.Video, windowDays int, excludeAuthor string, progress ProgressFunc) (CommentSet, error) {
	if err := ValidateWindow(windowDays); err != nil {
		return CommentSet{}, err
	}

	cutoff := c.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)
	recent := RecentVideos(videos, cutoff)
	set := CommentSet{WindowDays: windowDays, Qualifying: len(recent)}

	ids := make([]string, len(recent))
	for i, v := range recent {
		ids[i] = v.ID
	}
	key := engine.CacheKey("comments", strconv.Itoa(windowDays), excludeAuthor, strings.Join(ids, ","))
	if cached, ok := engine.CacheLoadJSON[CommentSet](ctx, key); ok {
		if progress != nil && len(recent) > 0 {
			progress(len(recent), len(recent))
		}
		return cached, nil
	}

	var errs []error
	for i, v := range recent {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		comments, err := CollectPages(ctx, func(ctx context.Context, cursor string) (Page[engine.Comment], error) {
			return c.platform.CommentThreads(ctx, v.ID, cursor)
		}, 0)
		if err != nil {
			engine.IncrCommentVideoSkipped()
			slog.Warn("comments: video skipped",
				slog.String("video_id", v.ID), slog.Int("partial", len(comments)), slog.Any("error", err))
			set.Skipped = append(set.Skipped, v.ID)
			errs = append(errs, fmt.Errorf("video %s: %w", v.ID, err))
		} else {
			for _, cm := range comments {
				if excludeAuthor != "" && cm.Author == excludeAuthor {
					continue
				}
				set.Comments = append(set.Comments, cm)
			}
		}
		if progress != nil {
			progress(i+1, len(recent))
		}
	}

	if len(errs) > 0 {
		return set, &engine.PartialCollectionError{
			Op:        "comment threads",
			Requested: len(recent),
			Collected: len(recent) - len(set.Skipped),
			Failed:    len(set.Skipped),
			Errs:      errs,
		}
	}
	engine.CacheStoreJSON(ctx, key, set)
	return set, nil
}
