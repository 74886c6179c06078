package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// FunnelParams scopes one funnel analysis.
type FunnelParams struct {
	KOL     string
	Segment AudienceSegment
	Product ProductCategory
	Start   FunnelStage
	End     FunnelStage
}

// Validate requires known enums and Start before End.
func (p FunnelParams) Validate() error {
	if !p.Start.Valid() || !p.End.Valid() {
		return &engine.ValidationError{Field: "funnel_stage", Reason: fmt.Sprintf("stages must be 0-%d", FunnelStageCount-1)}
	}
	if p.Start >= p.End {
		return &engine.ValidationError{Field: "funnel_stage", Reason: fmt.Sprintf("start %s must precede end %s", p.Start, p.End)}
	}
	if _, err := ParseProductCategory(string(p.Product)); err != nil {
		return err
	}
	if _, err := ParseAudienceSegment(string(p.Segment)); err != nil {
		return err
	}
	return nil
}

// FunnelPrompt embeds the stage range and the three upstream artifacts.
func FunnelPrompt(p FunnelParams, insight, productDescription, bvp string) string {
	segment := p.Segment
	if segment == "" {
		segment = SegmentCommunityFree
	}
	return fmt.Sprintf(funnelPrompt,
		strings.TrimSpace(p.KOL), segment.Label(), p.Product.Label(),
		p.Start.Label(), int(p.Start), p.End.Label(), int(p.End),
		clip(insight), clip(productDescription), clip(bvp),
	)
}

// AnalyzeFunnel lists barriers, drivers, touchpoints and key tasks for every
// transition between p.Start and p.End.
func (r *Runner) AnalyzeFunnel(ctx context.Context, p FunnelParams, insight, productDescription, bvp string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if insight == "" || productDescription == "" || bvp == "" {
		return "", &engine.ValidationError{Field: "funnel inputs", Reason: "insight, product description and brand value proposition are required"}
	}
	return r.run(ctx, "funnel_analysis", FunnelPrompt(p, insight, productDescription, bvp))
}
