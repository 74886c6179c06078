package sources

// YouTube collection is split across files by responsibility:
//   collector.go: generic cursor pagination
//   youtube.go:   Platform interface and the Data API v3 adapter
//   catalog.go:   channel resolution and the video catalog
//   comments.go:  recent comment threads

import (
	"context"
	"fmt"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Page sizes accepted by the Data API for each listing.
const (
	playlistPageSize = 50
	commentPageSize  = 100
)

// Platform is the video data API the pipeline reads from.
type Platform interface {
	// Channel returns engine.ErrChannelNotFound when the id matches nothing.
	Channel(ctx context.Context, channelID string) (engine.Channel, error)
	PlaylistVideoIDs(ctx context.Context, playlistID, pageToken string) (Page[string], error)
	// Videos accepts at most VideoBatchSize ids.
	Videos(ctx context.Context, ids []string) ([]engine.Video, error)
	CommentThreads(ctx context.Context, videoID, pageToken string) (Page[engine.Comment], error)
}

// DataAPI implements Platform on YouTube Data API v3.
type DataAPI struct {
	svc     *youtube.Service
	limiter *rate.Limiter
}

// NewDataAPI builds a Data API client authenticated by apiKey and throttled
// to qps requests per second (qps <= 0 disables throttling).
// Extra client options are appended after the key (endpoint, HTTP client).
func NewDataAPI(ctx context.Context, apiKey string, qps float64, opts ...option.ClientOption) (*DataAPI, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	limit := rate.Inf
	burst := 1
	if qps > 0 {
		limit = rate.Limit(qps)
		burst = max(1, int(qps))
	}
	return &DataAPI{svc: svc, limiter: rate.NewLimiter(limit, burst)}, nil
}

// begin throttles and counts one API request.
func (d *DataAPI) begin(ctx context.Context) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	engine.IncrYouTubeRequest()
	return nil
}

func apiError(op string, err error) error {
	engine.IncrYouTubeError()
	return &engine.ExternalCallError{Service: "youtube", Op: op, Err: err}
}

// Channel resolves a channel id to its uploads playlist and title.
func (d *DataAPI) Channel(ctx context.Context, channelID string) (engine.Channel, error) {
	if err := d.begin(ctx); err != nil {
		return engine.Channel{}, err
	}
	resp, err := d.svc.Channels.List([]string{"contentDetails", "snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return engine.Channel{}, apiError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return engine.Channel{}, fmt.Errorf("%w: %s", engine.ErrChannelNotFound, channelID)
	}
	item := resp.Items[0]
	ch := engine.Channel{ID: channelID}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		ch.UploadsRef = item.ContentDetails.RelatedPlaylists.Uploads
	}
	if item.Snippet != nil {
		ch.Title = item.Snippet.Title
	}
	if ch.UploadsRef == "" {
		return engine.Channel{}, fmt.Errorf("%w: %s has no uploads playlist", engine.ErrChannelNotFound, channelID)
	}
	return ch, nil
}

// PlaylistVideoIDs lists one page of video ids in a playlist.
func (d *DataAPI) PlaylistVideoIDs(ctx context.Context, playlistID, pageToken string) (Page[string], error) {
	if err := d.begin(ctx); err != nil {
		return Page[string]{}, err
	}
	call := d.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(playlistPageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return Page[string]{}, apiError("playlistItems.list", err)
	}
	page := Page[string]{Next: resp.NextPageToken, Items: make([]string, 0, len(resp.Items))}
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			continue
		}
		page.Items = append(page.Items, item.ContentDetails.VideoId)
	}
	return page, nil
}

// Videos fetches title, publish time and view count for up to 50 ids.
func (d *DataAPI) Videos(ctx context.Context, ids []string) ([]engine.Video, error) {
	if len(ids) > VideoBatchSize {
		return nil, fmt.Errorf("videos.list: %d ids exceeds batch limit %d", len(ids), VideoBatchSize)
	}
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	resp, err := d.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("videos.list", err)
	}
	videos := make([]engine.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := engine.Video{ID: item.Id}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.PublishedAt = parseAPITime(item.Snippet.PublishedAt)
		}
		if item.Statistics != nil {
			v.ViewCount = int64(item.Statistics.ViewCount)
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// CommentThreads lists one page of top-level comments on a video.
func (d *DataAPI) CommentThreads(ctx context.Context, videoID, pageToken string) (Page[engine.Comment], error) {
	if err := d.begin(ctx); err != nil {
		return Page[engine.Comment]{}, err
	}
	call := d.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(commentPageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return Page[engine.Comment]{}, apiError("commentThreads.list", err)
	}
	page := Page[engine.Comment]{Next: resp.NextPageToken, Items: make([]engine.Comment, 0, len(resp.Items))}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := item.Snippet.TopLevelComment.Snippet
		page.Items = append(page.Items, engine.Comment{
			VideoID:     videoID,
			Author:      s.AuthorDisplayName,
			PublishedAt: parseAPITime(s.PublishedAt),
			LikeCount:   int64(s.LikeCount),
			Text:        engine.CleanCommentText(s.TextDisplay),
		})
	}
	return page, nil
}

// parseAPITime parses the RFC 3339 timestamps the Data API returns.
func parseAPITime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
