package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// PainPointPrompt embeds up to MaxPromptComments question comments, each
// clipped to MaxCommentRunes.
func PainPointPrompt(channelID string, questions []engine.Comment) string {
	if len(questions) > MaxPromptComments {
		questions = questions[:MaxPromptComments]
	}
	var b strings.Builder
	for i, c := range questions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(engine.TruncateRunes(engine.OneLine(c.Text), MaxCommentRunes, "…"))
	}
	return fmt.Sprintf(painPointPrompt, channelID, b.String())
}

// AnalyzePainPoints turns question comments into pain-point and monetization
// tables. With no questions it returns engine.PlaceholderNoQuestions without
// calling the model.
func (r *Runner) AnalyzePainPoints(ctx context.Context, channelID string, questions []engine.Comment) (string, error) {
	if len(questions) == 0 {
		return engine.PlaceholderNoQuestions, nil
	}
	return r.run(ctx, "pain_points", PainPointPrompt(channelID, questions))
}
