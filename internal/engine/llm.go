package engine

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// Completer is the single-turn completion API every stage talks to.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// llmCompleter adapts a go-kit LLM client to Completer.
type llmCompleter struct {
	client *llm.Client
}

// NewLLMCompleter wraps a configured go-kit LLM client.
func NewLLMCompleter(c *llm.Client) Completer {
	return &llmCompleter{client: c}
}

func (l *llmCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return l.client.Complete(ctx, "", prompt)
}

// stripFences removes a markdown code fence wrapping the whole LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```md")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt and returns the trimmed answer.
// Blank answers are failures: the text is the artifact.
func CallLLM(ctx context.Context, c Completer, op, prompt string) (string, error) {
	metrics.LLMCalls.Add(1)
	resp, err := c.Complete(ctx, prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", &ExternalCallError{Service: "llm", Op: op, Err: err}
	}
	text := stripFences(resp)
	if text == "" {
		metrics.LLMEmpty.Add(1)
		return "", &ExternalCallError{Service: "llm", Op: op, Err: ErrEmptyCompletion}
	}
	return text, nil
}
