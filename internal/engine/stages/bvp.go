package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// BVPPrompt embeds the product description and the insight.
func BVPPrompt(productDescription, insight string) string {
	return fmt.Sprintf(bvpPrompt, clip(strings.TrimSpace(productDescription)), clip(insight))
}

// BuildBVP fills the brand value proposition table.
func (r *Runner) BuildBVP(ctx context.Context, productDescription, insight string) (string, error) {
	if strings.TrimSpace(productDescription) == "" {
		return "", &engine.ValidationError{Field: "product_description", Reason: "required"}
	}
	if insight == "" {
		return "", &engine.ValidationError{Field: "insight", Reason: "required"}
	}
	return r.run(ctx, "brand_value", BVPPrompt(productDescription, insight))
}
