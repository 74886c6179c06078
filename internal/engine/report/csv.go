package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// utf8BOM lets spreadsheet apps detect UTF-8 for CJK text.
const utf8BOM = "\uFEFF"

// WriteVideosCSV writes the video catalog with a header row.
func WriteVideosCSV(w io.Writer, videos []engine.Video) error {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			v.ID,
			v.Title,
			v.PublishedAt.Format(time.RFC3339),
			strconv.FormatInt(v.ViewCount, 10),
		})
	}
	return writeCSV(w, []string{"video_id", "title", "publishedAt", "viewCount"}, rows)
}

// WriteCommentsCSV writes the comment set with a header row.
func WriteCommentsCSV(w io.Writer, comments []engine.Comment) error {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			c.VideoID,
			c.Author,
			c.PublishedAt.Format(time.RFC3339),
			strconv.FormatInt(c.LikeCount, 10),
			c.Text,
		})
	}
	return writeCSV(w, []string{"video_id", "author", "published_at", "like_count", "text"}, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
