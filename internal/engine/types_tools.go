package engine

// --- MCP tool inputs ---

type ChannelLockInput struct {
	ChannelID string `json:"channel_id" jsonschema:"YouTube channel id (UC...). Locking a channel discards the previous session"`
}

type ChannelVideosInput struct {
	MaxVideos int `json:"max_videos,omitempty" jsonschema:"Maximum number of uploads to collect (default: VIDEO_CAP, 1000)"`
}

// NoInput is used by tools that take no parameters.
type NoInput struct{}

type CommentsFetchInput struct {
	WindowDays int `json:"window_days,omitempty" jsonschema:"Only videos published within this many days are read, 7-3650 (default: 180)"`
}

type AudienceInsightInput struct {
	Product string `json:"product" jsonschema:"Product category: online-course or app"`
}

type MonetizationInput struct {
	Product string `json:"product,omitempty" jsonschema:"Product category: online-course or app (default: the insight's category)"`
}

type ProductDescriptionInput struct {
	Source string `json:"source" jsonschema:"generated (use monetization_ideas output) or manual (use text)"`
	Text   string `json:"text,omitempty" jsonschema:"Hand-written product description, required when source is manual"`
}

type FunnelInput struct {
	Audience   string `json:"audience,omitempty" jsonschema:"Target segment: community-free (default), app-free, app-paid"`
	Product    string `json:"product,omitempty" jsonschema:"Product category: online-course or app (default: the insight's category)"`
	StartStage string `json:"start_stage" jsonschema:"Funnel stage the audience is in now: 0-6 or unaware, aware, interested, trial, first-purchase, repeat, advocate"`
	EndStage   string `json:"end_stage" jsonschema:"Funnel stage to move the audience to, later than start_stage"`
}

type ReportExportInput struct {
	Recipient string `json:"recipient,omitempty" jsonschema:"Email to share the report document with (optional)"`
}

type TableExportInput struct {
	Table string `json:"table" jsonschema:"Table to export as CSV: videos or comments"`
}
