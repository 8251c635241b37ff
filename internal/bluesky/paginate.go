package bluesky

import (
	"context"

	"github.com/compmotifs/likeminds/internal/ratelimit"
)

// PageFunc fetches one page. It receives the page limit to request and the
// cursor from the previous page (empty on the first call), and returns how
// many records it kept from the page plus the next cursor. An empty next
// cursor ends the run, so a fetcher that must stop early (an empty page,
// say) returns "" regardless of what the server handed out.
type PageFunc func(ctx context.Context, limit int, cursor string) (count int, next string, err error)

// Paginate drives a cursor-following fetch loop until target records have
// been collected or the cursor runs out. A negative target means unbounded.
// The counts a PageFunc reports accumulate toward the target, so a fetcher
// that drops records keeps paging until enough survive the drop. Pages are
// fetched strictly in cursor order; the pacer spaces them out, and because
// its burst lets the first call through immediately no delay trails the
// final page.
//
// Any page error aborts the loop and surfaces as-is; records gathered by
// earlier pages are the caller's to discard.
func Paginate(ctx context.Context, target int, pacer ratelimit.Pacer, fetch PageFunc) error {
	collected := 0
	cursor := ""

	for target < 0 || collected < target {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}

		limit := PageCap
		if target >= 0 && target-collected < limit {
			limit = target - collected
		}

		count, next, err := fetch(ctx, limit, cursor)
		if err != nil {
			return err
		}
		collected += count

		if next == "" {
			break
		}
		cursor = next
	}
	return nil
}
