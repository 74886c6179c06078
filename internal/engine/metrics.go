package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	YouTubeRequests      atomic.Int64
	YouTubeErrors        atomic.Int64
	DetailBatchesFailed  atomic.Int64
	CommentVideosSkipped atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	LLMEmpty             atomic.Int64
	StagesCompleted      atomic.Int64
	Exports              atomic.Int64
	ExportErrors         atomic.Int64
	ShareErrors          atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"youtube_requests":       metrics.YouTubeRequests.Load(),
		"youtube_errors":         metrics.YouTubeErrors.Load(),
		"detail_batches_failed":  metrics.DetailBatchesFailed.Load(),
		"comment_videos_skipped": metrics.CommentVideosSkipped.Load(),
		"llm_calls":              metrics.LLMCalls.Load(),
		"llm_errors":             metrics.LLMErrors.Load(),
		"llm_empty":              metrics.LLMEmpty.Load(),
		"stages_completed":       metrics.StagesCompleted.Load(),
		"exports":                metrics.Exports.Load(),
		"export_errors":          metrics.ExportErrors.Load(),
		"share_errors":           metrics.ShareErrors.Load(),
		"cache_hits":             hits,
		"cache_misses":           misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"youtube_requests", "youtube_errors",
		"detail_batches_failed", "comment_videos_skipped",
		"llm_calls", "llm_errors", "llm_empty",
		"stages_completed",
		"exports", "export_errors", "share_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrYouTubeRequest()      { metrics.YouTubeRequests.Add(1) }
func IncrYouTubeError()        { metrics.YouTubeErrors.Add(1) }
func IncrDetailBatchFailed()   { metrics.DetailBatchesFailed.Add(1) }
func IncrCommentVideoSkipped() { metrics.CommentVideosSkipped.Add(1) }
func IncrStageCompleted()      { metrics.StagesCompleted.Add(1) }
func IncrExport()              { metrics.Exports.Add(1) }
func IncrExportError()         { metrics.ExportErrors.Add(1) }
func IncrShareError()          { metrics.ShareErrors.Add(1) }

// TrackOperation runs fn inside a trace span and logs a warning if it takes
// longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer("go_ytinsight/engine").Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	elapsed := time.Since(start)
	if elapsed > 30*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
