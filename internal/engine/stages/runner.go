// Package stages holds the LLM-backed analysis stages of the strategy
// pipeline. Each stage is a pure prompt builder plus a Runner method that
// sends the prompt and returns the model's text untouched apart from trimming.
package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// Prompt input budgets.
const (
	MaxPromptComments = 500
	MaxCommentRunes   = 300
	MaxArtifactRunes  = 12000
)

// Runner executes prompt stages against one LLM.
type Runner struct {
	llm engine.Completer
}

// NewRunner creates a stage runner using c for completions.
func NewRunner(c engine.Completer) *Runner {
	return &Runner{llm: c}
}

// run sends one prompt. The result is never empty on success.
func (r *Runner) run(ctx context.Context, op, prompt string) (string, error) {
	var text string
	err := engine.TrackOperation(ctx, "stage:"+op, func(ctx context.Context) error {
		var err error
		text, err = engine.CallLLM(ctx, r.llm, op, prompt)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	engine.IncrStageCompleted()
	slog.Info("stage completed", slog.String("stage", op), slog.Int("chars", len(text)))
	return text, nil
}

// clip bounds an upstream artifact before it is embedded in a prompt.
func clip(s string) string {
	return engine.TruncateRunes(s, MaxArtifactRunes, "…")
}
