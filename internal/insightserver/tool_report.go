package insightserver

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExportOutput describes the stored report. A created document whose sharing
// failed is still returned, with ShareError set.
type ExportOutput struct {
	Document   report.DocumentRef `json:"document"`
	Shared     bool               `json:"shared"`
	ShareError string             `json:"share_error,omitempty"`
	State      pipeline.State     `json:"state"`
}

// TableOutput is one CSV export.
type TableOutput struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
	CSV   string `json:"csv"`
}

func registerReportExport(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "report_export",
		Description: "Compose every stage result into one report (header, then each section under its label in pipeline order) and save it as a Google Doc, optionally shared with recipient. If the document is created but sharing fails the document link is still returned with share_error. Requires funnel_analysis.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ReportExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		ref, err := m.Export(ctx, input.Recipient)
		var shareErr *report.ShareError
		if err != nil && !errors.As(err, &shareErr) {
			return nil, ExportOutput{}, err
		}
		out := ExportOutput{Document: ref, Shared: ref.SharedWith != "", State: m.Status().State}
		if shareErr != nil {
			out.ShareError = shareErr.Error()
		}
		return nil, out, nil
	})
}

func registerTableExport(server *mcp.Server, m *pipeline.Machine) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "table_export",
		Description: "Export the video catalog (video_id,title,publishedAt,viewCount) or the comment set (video_id,author,published_at,like_count,text) as UTF-8 CSV with a header row.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.TableExportInput) (*mcp.CallToolResult, TableOutput, error) {
		table := pipeline.Table(strings.ToLower(strings.TrimSpace(input.Table)))
		var b strings.Builder
		if err := m.ExportTable(table, &b); err != nil {
			return nil, TableOutput{}, err
		}
		csv := b.String()
		rows := strings.Count(csv, "\n") - 1
		return nil, TableOutput{Table: string(table), Rows: max(rows, 0), CSV: csv}, nil
	})
}
