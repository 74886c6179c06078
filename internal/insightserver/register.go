// Package insightserver exposes the strategy pipeline as MCP tools, one tool
// per pipeline operation.
package insightserver

import (
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 14

// RegisterTools registers every pipeline tool on server, all backed by m.
func RegisterTools(server *mcp.Server, m *pipeline.Machine) {
	registerChannelLock(server, m)
	registerChannelVideos(server, m)
	registerChannelAnalysis(server, m)
	registerCommentsFetch(server, m)
	registerPainPoints(server, m)
	registerAudienceInsight(server, m)
	registerMonetizationIdeas(server, m)
	registerProductDescription(server, m)
	registerBrandValue(server, m)
	registerFunnelAnalysis(server, m)
	registerReportExport(server, m)
	registerTableExport(server, m)
	registerPipelineStatus(server, m)
	registerPipelineReset(server, m)
}

// StageOutput is returned by every LLM-backed stage tool.
type StageOutput struct {
	Stage  pipeline.StageID  `json:"stage"`
	Text   string            `json:"text"`
	Params map[string]string `json:"params,omitempty"`
	State  pipeline.State    `json:"state"`
}

func stageOutput(m *pipeline.Machine, a pipeline.Artifact) StageOutput {
	return StageOutput{Stage: a.Stage, Text: a.Text, Params: a.Params, State: m.Status().State}
}
