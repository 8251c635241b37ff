package collectorimpl

import (
	"context"
	"sync"

	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/panjf2000/ants/v2"
)

const defaultConcurrency = 5

// CollectMany fans the single-account collector out over a bounded worker
// pool. Each worker owns its own request state; results land in per-account
// slots and are merged only after the pool's join barrier, so one bad
// account never sinks the batch.
func (c *CollectorImpl) CollectMany(ctx context.Context, accounts []domain.Account, opts collector.ManyOptions) (domain.LikeTable, []collector.Failure) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	type slot struct {
		table domain.LikeTable
		err   error
	}
	slots := make([]slot, len(accounts))

	var wg sync.WaitGroup
	pool, _ := ants.NewPool(concurrency, ants.WithPreAlloc(true))
	defer pool.Release()

	perAccount := collector.Options{
		TargetCount:    opts.PerAccountCount,
		IncludeText:    opts.IncludeText,
		InterPageDelay: opts.InterPageDelay,
	}

	for i, account := range accounts {
		wg.Add(1)
		i, account := i, account

		err := pool.Submit(func() {
			defer wg.Done()
			table, err := c.Collect(ctx, account, perAccount)
			slots[i] = slot{table: table, err: err}
		})
		if err != nil {
			wg.Done()
			slots[i] = slot{err: err}
		}
	}
	wg.Wait()

	var combined domain.LikeTable
	var failures []collector.Failure
	anyHandle := false
	for _, account := range accounts {
		if account.Handle != "" {
			anyHandle = true
		}
	}

	for i, account := range accounts {
		if slots[i].err != nil {
			c.Logger.Error("Account collection failed, substituting empty result",
				"account", account.Label(), "error", slots[i].err)
			failures = append(failures, collector.Failure{Account: account, Err: slots[i].err})
			continue
		}
		combined.Append(slots[i].table.Rows...)
	}

	anyAuthorHandle := false
	for _, row := range combined.Rows {
		if row.AuthorHandle != "" {
			anyAuthorHandle = true
			break
		}
	}

	combined.Columns = manyColumns(opts.IncludeText, anyHandle, anyAuthorHandle)
	return combined, failures
}

// manyColumns projects the fixed output column set, dropping columns no row
// populated rather than carrying empty ones.
func manyColumns(includeText, anyHandle, anyAuthorHandle bool) []string {
	columns := []string{"profile_id"}
	if anyHandle {
		columns = append(columns, "profile_handle")
	}
	columns = append(columns, "uri", "url", "author")
	if anyAuthorHandle {
		columns = append(columns, "author_handle")
	}
	columns = append(columns, "liked_at")
	if includeText {
		columns = append(columns, "text")
	}
	return columns
}
