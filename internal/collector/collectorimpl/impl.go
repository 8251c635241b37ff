package collectorimpl

import (
	"context"
	"encoding/json"

	"github.com/compmotifs/likeminds/internal/bluesky"
	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/identity"
	"github.com/compmotifs/likeminds/internal/ratelimit"
	"github.com/compmotifs/likeminds/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Bluesky  *bluesky.Client
	Resolver identity.Resolver
	Logger   logger.Logger
}

type CollectorImpl struct {
	Bluesky  *bluesky.Client
	Resolver identity.Resolver
	Logger   logger.Logger
}

func New(opts Opts) *CollectorImpl {
	return &CollectorImpl{
		Bluesky:  opts.Bluesky,
		Resolver: opts.Resolver,
		Logger:   opts.Logger.WithComponent("Collector"),
	}
}

var _ collector.Client = (*CollectorImpl)(nil)

// Collect gathers one account's liked posts. Pages are fetched strictly in
// cursor order; only post-type references survive, and only they count
// toward TargetCount, so pagination continues past pages diluted with other
// liked record types. When IncludeText is set each page triggers a single
// batch detail lookup. The final table is trimmed to exactly TargetCount
// rows.
func (c *CollectorImpl) Collect(ctx context.Context, account domain.Account, opts collector.Options) (domain.LikeTable, error) {
	if opts.TargetCount <= 0 {
		return tableWithColumns(nil, opts.IncludeText, account.Handle != ""), nil
	}

	account, err := c.Resolver.Normalize(ctx, account)
	if err != nil {
		return domain.LikeTable{}, err
	}
	pds, err := c.Resolver.ServiceEndpoint(ctx, account.DID)
	if err != nil {
		return domain.LikeTable{}, err
	}

	var rows []domain.LikeRecord
	pacer := ratelimit.NewPacer(opts.InterPageDelay)

	err = bluesky.Paginate(ctx, opts.TargetCount, pacer, func(ctx context.Context, limit int, cursor string) (int, string, error) {
		records, next, err := c.Bluesky.ListRecords(ctx, pds, account.DID, domain.CollectionLike, limit, cursor)
		if err != nil {
			return 0, "", err
		}

		pageRows := c.likesFromPage(records, account)
		if opts.IncludeText && len(pageRows) > 0 {
			if err := c.joinPostDetail(ctx, pageRows); err != nil {
				return 0, "", err
			}
		}
		rows = append(rows, pageRows...)

		if len(records) == 0 {
			// An empty page ends the run even if the server handed out a
			// cursor.
			return 0, "", nil
		}
		// Only rows that survive the post-type filter count toward the
		// target; a page of non-post likes keeps the pagination going.
		return len(pageRows), next, nil
	})
	if err != nil {
		// No partial delivery: a failing page discards the whole run.
		return domain.LikeTable{}, err
	}

	if len(rows) > opts.TargetCount {
		rows = rows[:opts.TargetCount]
	}
	return tableWithColumns(rows, opts.IncludeText, account.Handle != ""), nil
}

// likesFromPage decodes one listRecords page, keeping only references into
// the post collection. Anything else an account has liked is dropped.
func (c *CollectorImpl) likesFromPage(records []bluesky.RepoRecord, account domain.Account) []domain.LikeRecord {
	var rows []domain.LikeRecord
	for _, record := range records {
		var value bluesky.LikeValue
		if err := json.Unmarshal(record.Value, &value); err != nil {
			c.Logger.Warn("Skipping undecodable like record", "uri", record.URI, "error", err)
			continue
		}

		ref, err := domain.ParseURI(value.Subject.URI)
		if err != nil || !ref.IsPost() {
			continue
		}

		rows = append(rows, domain.LikeRecord{
			ProfileID:     account.DID,
			ProfileHandle: account.Handle,
			URI:           ref.URI(),
			URL:           ref.URL(),
			Author:        ref.Repo,
			LikedAt:       value.CreatedAt,
		})
	}
	return rows
}

// joinPostDetail runs one batch detail fetch for the page and joins the
// results back by URI. Rows without a matching detail keep empty text.
func (c *CollectorImpl) joinPostDetail(ctx context.Context, rows []domain.LikeRecord) error {
	uris := make([]string, len(rows))
	for i, row := range rows {
		uris[i] = row.URI
	}

	posts, err := c.Bluesky.GetPosts(ctx, uris)
	if err != nil {
		return err
	}

	byURI := make(map[string]bluesky.PostView, len(posts))
	for _, post := range posts {
		byURI[post.URI] = post
	}

	for i := range rows {
		post, ok := byURI[rows[i].URI]
		if !ok {
			continue
		}
		rows[i].Text = post.Record.Text
		rows[i].AuthorHandle = post.Author.Handle
		rows[i].AuthorDisplayName = post.Author.DisplayName
		rows[i].RepostCount = post.RepostCount
		rows[i].LikeCount = post.LikeCount
		rows[i].ReplyCount = post.ReplyCount
	}
	return nil
}

func tableWithColumns(rows []domain.LikeRecord, includeText, hasHandle bool) domain.LikeTable {
	columns := []string{"profile_id"}
	if hasHandle {
		columns = append(columns, "profile_handle")
	}
	columns = append(columns, "uri", "url", "author")
	if includeText {
		columns = append(columns, "author_handle")
	}
	columns = append(columns, "liked_at")
	if includeText {
		columns = append(columns, "text")
	}
	return domain.LikeTable{Rows: rows, Columns: columns}
}
