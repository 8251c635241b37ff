package collectorimpl

import (
	"context"

	"github.com/compmotifs/likeminds/internal/bluesky"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/ratelimit"
)

// ExcludeFollowed drops candidates the reference account already follows.
// Every candidate is normalized to a DID first (resolution failures
// propagate), the reference's full follow list is paged through with no
// cap, and survivors come back as resolved accounts in input order.
func (c *CollectorImpl) ExcludeFollowed(ctx context.Context, reference domain.Account, candidates []domain.Account) ([]domain.Account, error) {
	resolved := make([]domain.Account, len(candidates))
	for i, candidate := range candidates {
		account, err := c.Resolver.Normalize(ctx, candidate)
		if err != nil {
			return nil, err
		}
		resolved[i] = account
	}

	reference, err := c.Resolver.Normalize(ctx, reference)
	if err != nil {
		return nil, err
	}

	followed := make(map[string]struct{})
	err = bluesky.Paginate(ctx, -1, ratelimit.NewPacer(0), func(ctx context.Context, limit int, cursor string) (int, string, error) {
		actors, next, err := c.Bluesky.GetFollows(ctx, reference.DID, limit, cursor)
		if err != nil {
			return 0, "", err
		}
		if len(actors) == 0 {
			return 0, "", nil
		}
		for _, actor := range actors {
			followed[actor.DID] = struct{}{}
		}
		return len(actors), next, nil
	})
	if err != nil {
		return nil, err
	}

	var out []domain.Account
	for _, account := range resolved {
		if _, ok := followed[account.DID]; !ok {
			out = append(out, account)
		}
	}
	return out, nil
}
