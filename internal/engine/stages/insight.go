package stages

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// InsightPrompt combines the channel and pain-point analyses for one category.
func InsightPrompt(product ProductCategory, channelAnalysis, painPoints string) string {
	return fmt.Sprintf(insightPrompt, product.Label(), clip(channelAnalysis), clip(painPoints))
}

// AnalyzeInsight writes the first-person target-audience insight
// (Belief through RTB) for product.
func (r *Runner) AnalyzeInsight(ctx context.Context, product ProductCategory, channelAnalysis, painPoints string) (string, error) {
	if _, err := ParseProductCategory(string(product)); err != nil {
		return "", err
	}
	if channelAnalysis == "" || painPoints == "" {
		return "", &engine.ValidationError{Field: "insight inputs", Reason: "channel analysis and pain points are required"}
	}
	return r.run(ctx, "audience_insight", InsightPrompt(product, channelAnalysis, painPoints))
}
