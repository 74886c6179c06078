package stages

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// MonetizationPrompt asks for product ideas of the given category.
func MonetizationPrompt(product ProductCategory, insight string) string {
	return fmt.Sprintf(monetizationPrompt, product.Label(), clip(insight))
}

// SuggestMonetization proposes commercialization ideas from the insight.
func (r *Runner) SuggestMonetization(ctx context.Context, product ProductCategory, insight string) (string, error) {
	if _, err := ParseProductCategory(string(product)); err != nil {
		return "", err
	}
	if insight == "" {
		return "", &engine.ValidationError{Field: "insight", Reason: "required"}
	}
	return r.run(ctx, "monetization_ideas", MonetizationPrompt(product, insight))
}
