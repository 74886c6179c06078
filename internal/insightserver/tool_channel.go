package insightserver

import (
	"context"
	"errors"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/anatolykoptev/go_ytinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const videoPreviewSize = 20

// VideosOutput summarizes a collected catalog.
type VideosOutput struct {
	Count         int            `json:"count"`
	Requested     int            `json:"requested"`
	Missing       int            `json:"missing"`
	Batches       []int          `json:"batches"`
	FailedBatches int            `json:"failed_batches"`
	Gap           string         `json:"gap,omitempty"`
	Preview       []VideoRow     `json:"preview"`
}

// VideoRow is a flat catalog row for tool output.
type VideoRow struct {
	ID          string `json:"video_id"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
	ViewCount   int64  `json:"view_count"`
}

func videoRows(videos []engine.Video) []VideoRow {
	rows := make([]VideoRow, len(videos))
	for i, v := range videos {
		rows[i] = VideoRow{ID: v.ID, Title: v.Title, PublishedAt: v.PublishedAt.Format(time.RFC3339), ViewCount: v.ViewCount}
	}
	return rows
}

func registerChannelLock(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_lock",
		Description: "Lock the YouTube channel to analyse. Resolves the channel's uploads playlist and title and starts a fresh pipeline session; everything produced for the previous channel is discarded. An unknown channel id leaves the current session untouched.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ChannelLockInput) (*mcp.CallToolResult, pipeline.Status, error) {
		if input.ChannelID == "" {
			return nil, pipeline.Status{}, errors.New("channel_id is required")
		}
		st, err := m.Lock(ctx, input.ChannelID)
		if err != nil {
			return nil, pipeline.Status{}, err
		}
		return nil, st, nil
	})
}

func registerChannelVideos(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_videos",
		Description: "Collect the locked channel's video catalog (title, publish time, view count), paging the uploads playlist and fetching details in batches of 50. Failed batches are counted and reported as a gap; the partial catalog is kept. Use table_export for the full CSV.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ChannelVideosInput) (*mcp.CallToolResult, VideosOutput, error) {
		listing, err := m.FetchVideos(ctx, input.MaxVideos)
		var partial *engine.PartialCollectionError
		if err != nil && !errors.As(err, &partial) {
			return nil, VideosOutput{}, err
		}
		if err != nil && len(listing.Videos) == 0 {
			return nil, VideosOutput{}, err
		}
		out := VideosOutput{
			Count:         len(listing.Videos),
			Requested:     listing.Requested,
			Missing:       listing.Missing,
			Batches:       listing.Batches,
			FailedBatches: listing.FailedBatches,
			Preview:       videoRows(toolutil.Preview(listing.Videos, videoPreviewSize)),
		}
		if partial != nil {
			out.Gap = partial.Error()
		}
		return nil, out, nil
	})
}

func registerChannelAnalysis(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_analysis",
		Description: "Analyse the channel from its video catalog: creator profile, channel value proposition, content breakdown, top 10 videos and audience profile, as Markdown tables. Requires channel_videos.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ engine.NoInput) (*mcp.CallToolResult, StageOutput, error) {
		a, err := m.AnalyzeChannel(ctx)
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}
