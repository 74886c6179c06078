package report

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const googleDocMimeType = "application/vnd.google-apps.document"

// GoogleDocs stores reports as Google Docs shared through Drive.
type GoogleDocs struct {
	docs  *docs.Service
	drive *drive.Service
}

// NewGoogleDocs builds Docs and Drive clients from the same options
// (credentials JSON, endpoint, HTTP client).
func NewGoogleDocs(ctx context.Context, opts ...option.ClientOption) (*GoogleDocs, error) {
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &GoogleDocs{docs: docsSvc, drive: driveSvc}, nil
}

// DocumentURL is the edit link of a Google Doc.
func DocumentURL(id string) string {
	return "https://docs.google.com/document/d/" + id
}

// CreateDocument creates an empty document, inside folderID when given.
func (g *GoogleDocs) CreateDocument(ctx context.Context, title, folderID string) (DocumentRef, error) {
	if folderID != "" {
		f, err := g.drive.Files.Create(&drive.File{
			Name:     title,
			MimeType: googleDocMimeType,
			Parents:  []string{folderID},
		}).SupportsAllDrives(true).Fields("id").Context(ctx).Do()
		if err != nil {
			return DocumentRef{}, err
		}
		return DocumentRef{ID: f.Id, URL: DocumentURL(f.Id), Title: title}, nil
	}
	doc, err := g.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return DocumentRef{}, err
	}
	return DocumentRef{ID: doc.DocumentId, URL: DocumentURL(doc.DocumentId), Title: title}, nil
}

// InsertText writes text at the start of the document body.
func (g *GoogleDocs) InsertText(ctx context.Context, docID, text string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: 1},
				Text:     text,
			},
		}},
	}
	_, err := g.docs.Documents.BatchUpdate(docID, req).Context(ctx).Do()
	return err
}

// GrantAccess shares the document with a user without a notification email.
func (g *GoogleDocs) GrantAccess(ctx context.Context, docID, identity, role string) error {
	_, err := g.drive.Permissions.Create(docID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: identity,
	}).SendNotificationEmail(false).SupportsAllDrives(true).Context(ctx).Do()
	return err
}
