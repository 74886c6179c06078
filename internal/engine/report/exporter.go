// Package report composes the strategy report and hands it to a document
// store. It also writes the tabular video and comment exports.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

const (
	sectionDelimiter = "========================================"
	timestampLayout  = "2006-01-02 15:04:05"
	titleSuffix      = "_YouTube頻道AI策略分析報告"
)

// ErrStoreNotConfigured is returned by Export when no document store is wired.
var ErrStoreNotConfigured = errors.New("document store not configured")

// Section is one stage artifact under its report label.
type Section struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// DocumentRef identifies a stored report.
type DocumentRef struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	SharedWith string `json:"shared_with,omitempty"`
}

// DocumentStore persists documents and grants access to them.
type DocumentStore interface {
	CreateDocument(ctx context.Context, title, folderID string) (DocumentRef, error)
	InsertText(ctx context.Context, docID, text string) error
	GrantAccess(ctx context.Context, docID, identity, role string) error
}

// ShareError means the document exists but granting access failed.
type ShareError struct {
	Ref       DocumentRef
	Recipient string
	Err       error
}

func (e *ShareError) Error() string {
	return fmt.Sprintf("document %s created but sharing with %s failed: %v", e.Ref.URL, e.Recipient, e.Err)
}

func (e *ShareError) Unwrap() error { return e.Err }

// DocumentTitle names the report document for a channel.
func DocumentTitle(channelTitle string) string {
	return strings.TrimSpace(channelTitle) + titleSuffix
}

// Compose renders the header followed by every section in the given order.
func Compose(title string, generatedAt time.Time, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "報告主題：%s\n\n", title)
	fmt.Fprintf(&b, "分析時間：%s\n\n", generatedAt.Format(timestampLayout))
	for _, s := range sections {
		b.WriteString(sectionDelimiter)
		b.WriteString("\n\n## ")
		b.WriteString(s.Label)
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(s.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Exporter writes composed reports to a DocumentStore.
type Exporter struct {
	store    DocumentStore
	folderID string
	role     string
	now      func() time.Time
}

// NewExporter creates an exporter. A nil store makes every Export fail with
// ErrStoreNotConfigured. An empty role defaults to "writer".
func NewExporter(store DocumentStore, folderID, role string) *Exporter {
	if role == "" {
		role = "writer"
	}
	return &Exporter{store: store, folderID: folderID, role: role, now: time.Now}
}

// Export creates the document, inserts the report and shares it with
// recipient when one is given.
//
// Creation or insertion failures return *engine.ExternalCallError and no ref.
// A sharing failure returns the valid ref together with *ShareError.
func (e *Exporter) Export(ctx context.Context, title string, sections []Section, recipient string) (DocumentRef, error) {
	if e.store == nil {
		return DocumentRef{}, ErrStoreNotConfigured
	}
	body := Compose(title, e.now(), sections)

	ref, err := e.store.CreateDocument(ctx, title, e.folderID)
	if err != nil {
		engine.IncrExportError()
		return DocumentRef{}, &engine.ExternalCallError{Service: "docs", Op: "create", Err: err}
	}
	if err := e.store.InsertText(ctx, ref.ID, body); err != nil {
		engine.IncrExportError()
		return DocumentRef{}, &engine.ExternalCallError{Service: "docs", Op: "insert text", Err: err}
	}
	engine.IncrExport()
	slog.Info("report exported", slog.String("doc_id", ref.ID), slog.Int("sections", len(sections)))

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return ref, nil
	}
	if err := e.store.GrantAccess(ctx, ref.ID, recipient, e.role); err != nil {
		engine.IncrShareError()
		slog.Warn("report share failed", slog.String("doc_id", ref.ID), slog.String("recipient", recipient), slog.Any("error", err))
		return ref, &ShareError{Ref: ref, Recipient: recipient, Err: err}
	}
	ref.SharedWith = recipient
	return ref, nil
}
