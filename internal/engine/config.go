package engine

import (
	"net/http"
	"time"
)

// Defaults shared by main and the MCP tools.
const (
	DefaultVideoCap   = 1000
	DefaultWindowDays = 180
	MinWindowDays     = 7
	MaxWindowDays     = 3650
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeQPS            float64
	LLMAPIKey             string
	LLMAPIKeyFallbacks    []string
	LLMAPIBase            string
	LLMModel              string
	LLMTemperature        float64
	LLMMaxTokens          int
	GoogleCredentialsJSON string // service account JSON for Docs + Drive
	ReportFolderID        string // optional Drive folder for exported reports
	ReportShareRole       string // drive permission role granted to the recipient
	VideoCap              int
	WindowDays            int
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client // LLM transport
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, stages, report).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.VideoCap <= 0 {
		c.VideoCap = DefaultVideoCap
	}
	if c.WindowDays == 0 {
		c.WindowDays = DefaultWindowDays
	}
	if c.ReportShareRole == "" {
		c.ReportShareRole = "writer"
	}
	cfg = c
	Cfg = &cfg
}
