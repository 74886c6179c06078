package insightserver

import (
	"context"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPipelineStatus(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_status",
		Description: "Show the current session: locked channel, state, stages produced, stages runnable now, collection gaps and the exported report.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ engine.NoInput) (*mcp.CallToolResult, pipeline.Status, error) {
		return nil, m.Status(), nil
	})
}

func registerPipelineReset(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_reset",
		Description: "Discard the current session and every result in it.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ engine.NoInput) (*mcp.CallToolResult, pipeline.Status, error) {
		return nil, m.Reset(), nil
	})
}
