package sources

import "context"

// Page is one decoded page of upstream items.
type Page[T any] struct {
	Items []T
	// Total is the upstream-reported item count, or 0 when unknown.
	Total int
}

// PageFetcher loads page number page (1-based).
type PageFetcher[T any] func(ctx context.Context, page int) (Page[T], error)

// Progress describes how far Paginate got.
type Progress struct {
	// Pages is the number of pages fetched successfully.
	Pages int
	// Truncated is set when maxPages stopped the walk while upstream still
	// had items to give.
	Truncated bool
}

// Paginate walks pages until a short page, the reported total, maxPages or an
// error. On error it returns the items already collected together with the
// error and the progress made.
func Paginate[T any](ctx context.Context, pageSize, maxPages int, fetch PageFetcher[T]) ([]T, Progress, error) {
	var items []T
	var prog Progress
	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return items, prog, err
		}

		p, err := fetch(ctx, page)
		if err != nil {
			return items, prog, err
		}
		prog.Pages++
		items = append(items, p.Items...)

		if len(p.Items) < pageSize {
			return items, prog, nil
		}
		if p.Total > 0 && len(items) >= p.Total {
			return items, prog, nil
		}
	}
	prog.Truncated = prog.Pages > 0
	return items, prog, nil
}
