package sources

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// fakePlatform serves a synthetic channel with n uploads, one per day
// going back from base.
type fakePlatform struct {
	mu sync.Mutex

	channel  engine.Channel
	videos   []engine.Video
	comments map[string][]engine.Comment

	pageSize      int
	failBatch     map[int]bool    // detail call index -> fail
	failComments  map[string]bool // video id -> fail
	batchSizes    []int
	channelCalls  int
	commentCalls  map[string]int
	commentsPerPg int
}

func newFakePlatform(n int, base time.Time) *fakePlatform {
	f := &fakePlatform{
		channel:       engine.Channel{ID: "UC1", UploadsRef: "UU1", Title: "Demo"},
		comments:      map[string][]engine.Comment{},
		pageSize:      playlistPageSize,
		failBatch:     map[int]bool{},
		failComments:  map[string]bool{},
		commentCalls:  map[string]int{},
		commentsPerPg: 2,
	}
	for i := range n {
		id := "v" + strconv.Itoa(i)
		f.videos = append(f.videos, engine.Video{
			ID:          id,
			Title:       "Video " + strconv.Itoa(i),
			PublishedAt: base.Add(-time.Duration(i) * 24 * time.Hour),
			ViewCount:   int64(100 * i),
		})
	}
	return f
}

func (f *fakePlatform) Channel(_ context.Context, id string) (engine.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelCalls++
	if id != f.channel.ID {
		return engine.Channel{}, fmt.Errorf("%w: %s", engine.ErrChannelNotFound, id)
	}
	return f.channel, nil
}

func (f *fakePlatform) PlaylistVideoIDs(_ context.Context, _, pageToken string) (Page[string], error) {
	start := 0
	if pageToken != "" {
		start, _ = strconv.Atoi(pageToken)
	}
	end := min(start+f.pageSize, len(f.videos))
	page := Page[string]{}
	for _, v := range f.videos[start:end] {
		page.Items = append(page.Items, v.ID)
	}
	if end < len(f.videos) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func (f *fakePlatform) Videos(_ context.Context, ids []string) ([]engine.Video, error) {
	f.mu.Lock()
	call := len(f.batchSizes)
	f.batchSizes = append(f.batchSizes, len(ids))
	f.mu.Unlock()
	if len(ids) > VideoBatchSize {
		return nil, fmt.Errorf("batch too large: %d", len(ids))
	}
	if f.failBatch[call] {
		return nil, fmt.Errorf("batch %d: backend error", call)
	}
	byID := make(map[string]engine.Video, len(f.videos))
	for _, v := range f.videos {
		byID[v.ID] = v
	}
	var out []engine.Video
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakePlatform) CommentThreads(_ context.Context, videoID, pageToken string) (Page[engine.Comment], error) {
	f.mu.Lock()
	f.commentCalls[videoID]++
	f.mu.Unlock()
	if f.failComments[videoID] {
		return Page[engine.Comment]{}, fmt.Errorf("comments disabled for %s", videoID)
	}
	all := f.comments[videoID]
	start := 0
	if pageToken != "" {
		start, _ = strconv.Atoi(pageToken)
	}
	end := min(start+f.commentsPerPg, len(all))
	page := Page[engine.Comment]{Items: append([]engine.Comment(nil), all[start:end]...)}
	if end < len(all) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

func (f *fakePlatform) addComments(videoID string, texts ...string) {
	for i, t := range texts {
		f.comments[videoID] = append(f.comments[videoID], engine.Comment{
			VideoID: videoID,
			Author:  "viewer" + strconv.Itoa(i),
			Text:    t,
		})
	}
}
