package engine

import "time"

// --- Channel data types ---

// Channel is a resolved YouTube channel. Immutable once resolved.
type Channel struct {
	ID         string `json:"channel_id"`
	UploadsRef string `json:"uploads_playlist_id"`
	Title      string `json:"title"`
}

// Video is one row of the channel catalog.
type Video struct {
	ID          string    `json:"video_id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	ViewCount   int64     `json:"view_count"`
}

// Comment is a top-level comment thread on a video.
type Comment struct {
	VideoID     string    `json:"video_id"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	LikeCount   int64     `json:"like_count"`
	Text        string    `json:"text"`
}

// PlaceholderNoQuestions is stored as the pain-point artifact when no
// comment in the set reads like a question.
const PlaceholderNoQuestions = "找不到可分析的問題留言。"
