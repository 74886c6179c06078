package insightserver

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/stages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProductOutput reports the product description the BVP will use.
type ProductOutput struct {
	Source string         `json:"source"`
	Text   string         `json:"text"`
	State  pipeline.State `json:"state"`
}

// optionalProduct parses a category, leaving it empty when not given.
func optionalProduct(s string) (stages.ProductCategory, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return stages.ParseProductCategory(s)
}

func registerAudienceInsight(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "audience_insight",
		Description: "Write the first-person target-audience insight (Belief/Myth, Need/Pain Point, Current Solutions, Limitation, Functional, Emotional and Parity benefits, USP, RTB) for an online course or app. Requires channel_analysis and pain_points. Re-running discards monetization, product, BVP, funnel and report.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.AudienceInsightInput) (*mcp.CallToolResult, StageOutput, error) {
		product, err := stages.ParseProductCategory(input.Product)
		if err != nil {
			return nil, StageOutput{}, err
		}
		a, err := m.AnalyzeInsight(ctx, product)
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}

func registerMonetizationIdeas(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "monetization_ideas",
		Description: "Propose concrete commercialization ideas (offer, content or features, format, pricing) from the audience insight, plus one recommended product. Optional: the pipeline can skip straight to product_description with source=manual.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.MonetizationInput) (*mcp.CallToolResult, StageOutput, error) {
		product, err := optionalProduct(input.Product)
		if err != nil {
			return nil, StageOutput{}, err
		}
		a, err := m.SuggestMonetization(ctx, product)
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}

func registerProductDescription(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "product_description",
		Description: "Set the product the brand value proposition is built for: source=generated takes the monetization_ideas output, source=manual uses your own text (no monetization stage needed). Requires audience_insight.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.ProductDescriptionInput) (*mcp.CallToolResult, ProductOutput, error) {
		var (
			p   pipeline.ProductDescription
			err error
		)
		switch strings.ToLower(strings.TrimSpace(input.Source)) {
		case "generated":
			p, err = m.UseMonetizationAsProduct()
		case "manual", "":
			p, err = m.SetProductDescription(input.Text)
		default:
			err = errors.New("source must be generated or manual")
		}
		if err != nil {
			return nil, ProductOutput{}, err
		}
		return nil, ProductOutput{Source: p.Source(), Text: p.Text(), State: m.Status().State}, nil
	})
}

func registerBrandValue(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "brand_value",
		Description: "Build the brand value proposition (target, insight, benefits, USP, RTB, brand promise, tagline) for the product description. Requires product_description and audience_insight.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ engine.NoInput) (*mcp.CallToolResult, StageOutput, error) {
		a, err := m.BuildBVP(ctx)
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}

func registerFunnelAnalysis(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "funnel_analysis",
		Description: "Analyse barriers, drivers, touchpoints and key tasks for moving an audience segment between two marketing-funnel stages (0 unaware, 1 aware, 2 interested, 3 trial, 4 first-purchase, 5 repeat, 6 advocate). Requires audience_insight, product_description and brand_value.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.FunnelInput) (*mcp.CallToolResult, StageOutput, error) {
		segment, err := stages.ParseAudienceSegment(input.Audience)
		if err != nil {
			return nil, StageOutput{}, err
		}
		product, err := optionalProduct(input.Product)
		if err != nil {
			return nil, StageOutput{}, err
		}
		start, err := stages.ParseFunnelStage(input.StartStage)
		if err != nil {
			return nil, StageOutput{}, err
		}
		end, err := stages.ParseFunnelStage(input.EndStage)
		if err != nil {
			return nil, StageOutput{}, err
		}
		a, err := m.AnalyzeFunnel(ctx, pipeline.FunnelRequest{Segment: segment, Product: product, Start: start, End: end})
		if err != nil {
			return nil, StageOutput{}, err
		}
		return nil, stageOutput(m, a), nil
	})
}
