package insightserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/anatolykoptev/go_ytinsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const questionPreviewSize = 10

// CommentsOutput summarizes a collected comment set.
type CommentsOutput struct {
	WindowDays       int      `json:"window_days"`
	QualifyingVideos int      `json:"qualifying_videos"`
	Comments         int      `json:"comments"`
	Questions        int      `json:"questions"`
	SkippedVideos    []string `json:"skipped_videos,omitempty"`
	Gap              string   `json:"gap,omitempty"`
	QuestionPreview  []string `json:"question_preview"`
}

func registerCommentsFetch(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "comments_fetch",
		Description: "Collect top-level comments on the channel's videos published within window_days (the window applies to the video's publish date). The channel's own comments are excluded and question-like comments are picked out for pain_points. Videos whose comments fail to load are skipped and reported. Sends progress notifications per video when a progress token is given.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.CommentsFetchInput) (*mcp.CallToolResult, CommentsOutput, error) {
		window := toolutil.IntOr(input.WindowDays, engine.Cfg.WindowDays)
		window = toolutil.IntOr(window, engine.DefaultWindowDays)

		res, err := m.FetchComments(ctx, window, toolutil.Progress(ctx, req, "videos"))
		var partial *engine.PartialCollectionError
		if err != nil && !errors.As(err, &partial) {
			return nil, CommentsOutput{}, err
		}
		out := CommentsOutput{
			WindowDays:       res.Set.WindowDays,
			QualifyingVideos: res.Set.Qualifying,
			Comments:         len(res.Set.Comments),
			Questions:        len(res.Questions),
			SkippedVideos:    res.Set.Skipped,
			QuestionPreview:  []string{},
		}
		for _, q := range toolutil.Preview(res.Questions, questionPreviewSize) {
			out.QuestionPreview = append(out.QuestionPreview, engine.TruncateRunes(q.Text, 120, "…"))
		}
		if partial != nil {
			out.Gap = partial.Error()
		}
		return nil, out, nil
	})
}

func registerPainPoints(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pain_points",
		Description: "Analyse fan pain points from the question-like comments and suggest monetization directions (online course or app). With no question comments a placeholder result is stored and the pipeline continues. Requires comments_fetch.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ engine.NoInput) (*mcp.CallToolResult, StageOutput, error) {
		a, err := m.AnalyzePainPoints(ctx)
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}
