package sources

import "context"

// Page is one page of a cursor-listed collection.
type Page[T any] struct {
	Items []T
	Next  string // empty on the last page
}

// PageFunc fetches the page at cursor. The first page has cursor "".
type PageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// CollectPages follows cursors until the listing is exhausted, concatenating
// items in received order.
//
// With limit > 0 no further page is requested once limit items are held; the
// last page may overshoot and the caller truncates. A failing page stops the
// walk and the items gathered so far are returned with the error. Nothing is
// retried here.
func CollectPages[T any](ctx context.Context, fetch PageFunc[T], limit int) ([]T, error) {
	var items []T
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		page, err := fetch(ctx, cursor)
		if err != nil {
			return items, err
		}
		items = append(items, page.Items...)
		if page.Next == "" {
			return items, nil
		}
		if limit > 0 && len(items) >= limit {
			return items, nil
		}
		cursor = page.Next
	}
}
