// go_ytinsight: YouTube channel marketing-strategy MCP server.
//
// Locks a channel, collects its videos and recent comments through the YouTube
// Data API, runs a staged LLM analysis (channel audience, fan pain points,
// audience insight, monetization, brand value proposition, marketing funnel)
// and exports the combined report to Google Docs.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/pipeline"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/report"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/sources"
	"github.com/anatolykoptev/go_ytinsight/internal/insightserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	m, err := initEngine(context.Background())
	if err != nil {
		slog.Error("engine init failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting go_ytinsight",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytinsight",
		Version: version,
	}, nil)

	insightserver.RegisterTools(server, m)
	slog.Info("tools registered", slog.Int("count", insightserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytinsight",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine(ctx context.Context) (*pipeline.Machine, error) {
	c := engine.Config{
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeQPS:            env.Float("YOUTUBE_QPS", 5),
		LLMAPIKey:             env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:    env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:            env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:              env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:        env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:          env.Int("LLM_MAX_TOKENS", 16384),
		GoogleCredentialsJSON: env.Str("GOOGLE_CREDENTIALS_JSON", ""),
		ReportFolderID:        env.Str("REPORT_FOLDER_ID", ""),
		ReportShareRole:       env.Str("REPORT_SHARE_ROLE", "writer"),
		VideoCap:              env.Int("VIDEO_CAP", engine.DefaultVideoCap),
		WindowDays:            env.Int("COMMENT_WINDOW_DAYS", engine.DefaultWindowDays),
		CacheMaxEntries:       env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval:  env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 180 * time.Second,
			Transport: otelhttp.NewTransport(&http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			}),
		},
	}
	if c.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set, YouTube requests will be rejected")
	}

	llmClient := llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(c.HTTPClient),
	)

	engine.Init(c)

	yt, err := sources.NewDataAPI(ctx, c.YouTubeAPIKey, c.YouTubeQPS)
	if err != nil {
		return nil, err
	}

	// Report export is optional; without credentials report_export fails cleanly.
	var exporter *report.Exporter
	if c.GoogleCredentialsJSON != "" {
		docs, err := report.NewGoogleDocs(ctx, option.WithCredentialsJSON([]byte(c.GoogleCredentialsJSON)))
		if err != nil {
			slog.Warn("google docs init failed, report export disabled", slog.Any("error", err))
		} else {
			exporter = report.NewExporter(docs, engine.Cfg.ReportFolderID, engine.Cfg.ReportShareRole)
			slog.Info("google docs exporter initialized")
		}
	}

	cacheTTL := env.Duration("CACHE_TTL", time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	return pipeline.NewMachine(yt, engine.NewLLMCompleter(llmClient), exporter), nil
}
