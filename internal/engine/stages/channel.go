package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// ChannelAnalysisPrompt lists every video as "- title (觀看數: n)".
func ChannelAnalysisPrompt(channelID string, videos []engine.Video) string {
	var b strings.Builder
	for i, v := range videos {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (觀看數: %d)", engine.OneLine(v.Title), v.ViewCount)
	}
	return fmt.Sprintf(channelAnalysisPrompt, channelID, b.String())
}

// AnalyzeChannel profiles the creator, content mix, top videos and audience.
func (r *Runner) AnalyzeChannel(ctx context.Context, channelID string, videos []engine.Video) (string, error) {
	if len(videos) == 0 {
		return "", &engine.ValidationError{Field: "videos", Reason: "catalog is empty"}
	}
	return r.run(ctx, "channel_analysis", ChannelAnalysisPrompt(channelID, videos))
}
