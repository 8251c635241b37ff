package collectorimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compmotifs/likeminds/internal/bluesky"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/ratelimit"
	"github.com/compmotifs/likeminds/pkg/errors"
)

// ExtractLikers pages through the accounts that liked one post. The post
// may be referenced by canonical viewing URL or by at:// URI; a URL's
// profile segment may still be a handle, which is resolved first.
func (c *CollectorImpl) ExtractLikers(ctx context.Context, postRef string, maxLikers int, interPageDelay time.Duration) ([]domain.LikerRecord, error) {
	if maxLikers <= 0 {
		return nil, nil
	}

	ref, err := c.resolvePostRef(ctx, postRef)
	if err != nil {
		return nil, err
	}
	if !ref.IsPost() {
		return nil, errors.Wrap(errors.ErrInvalidReference, fmt.Sprintf("%s is not a post reference", postRef))
	}

	// The likes endpoint requires the post's content-hash stamp.
	cid, err := c.Bluesky.GetPostCID(ctx, ref.URI())
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, fmt.Sprintf("fetch post %s: %v", ref.URI(), err))
	}

	var likers []domain.LikerRecord
	pacer := ratelimit.NewPacer(interPageDelay)

	err = bluesky.Paginate(ctx, maxLikers, pacer, func(ctx context.Context, limit int, cursor string) (int, string, error) {
		actors, next, err := c.Bluesky.GetLikes(ctx, ref.URI(), cid, limit, cursor)
		if err != nil {
			return 0, "", err
		}
		if len(actors) == 0 {
			// Zero likes ends the run even if the server handed out a
			// cursor.
			return 0, "", nil
		}
		for _, actor := range actors {
			if actor.DID == "" {
				continue
			}
			likers = append(likers, domain.LikerRecord{
				DID:         actor.DID,
				Handle:      actor.Handle,
				DisplayName: actor.DisplayName,
			})
		}
		return len(actors), next, nil
	})
	if err != nil {
		return nil, err
	}

	if len(likers) > maxLikers {
		likers = likers[:maxLikers]
	}
	return likers, nil
}

func (c *CollectorImpl) resolvePostRef(ctx context.Context, postRef string) (domain.PostRef, error) {
	if strings.HasPrefix(postRef, "at://") {
		return domain.ParseURI(postRef)
	}

	ref, err := domain.ParsePostURL(postRef)
	if err != nil {
		return domain.PostRef{}, err
	}
	if !strings.HasPrefix(ref.Repo, "did:") {
		did, err := c.Resolver.ResolveHandle(ctx, ref.Repo)
		if err != nil {
			return domain.PostRef{}, err
		}
		ref.Repo = did
	}
	return ref, nil
}
