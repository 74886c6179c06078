// Package toolutil provides shared helper functions for go_ytinsight MCP tools.
package toolutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// IntOr returns v, or def when v is zero.
func IntOr(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Progress returns a callback that forwards (done, total) as MCP progress
// notifications. It returns nil when the caller sent no progress token.
// Notification failures are logged and otherwise ignored.
func Progress(ctx context.Context, req *mcp.CallToolRequest, label string) func(done, total int) {
	if req == nil || req.Session == nil || req.Params == nil {
		return nil
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return nil
	}
	return func(done, total int) {
		err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
			ProgressToken: token,
			Progress:      float64(done),
			Total:         float64(total),
			Message:       fmt.Sprintf("%s %d/%d", label, done, total),
		})
		if err != nil {
			slog.Debug("progress notification failed", slog.Any("error", err))
		}
	}
}

// Preview returns at most n leading items.
func Preview[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
