package collector

import (
	"context"
	"time"

	"github.com/compmotifs/likeminds/internal/domain"
)

// Options configures a single-account like collection.
type Options struct {
	// TargetCount is the number of raw like records to gather. Zero or
	// negative yields an empty table without any network call.
	TargetCount int

	// IncludeText requests post detail (text, author, engagement counts)
	// via one batch lookup per page.
	IncludeText bool

	// InterPageDelay spaces successive page requests. Zero disables pacing.
	InterPageDelay time.Duration
}

// ManyOptions configures a fan-out collection over several accounts.
type ManyOptions struct {
	PerAccountCount int
	IncludeText     bool
	InterPageDelay  time.Duration

	// Concurrency bounds the worker pool. Defaults to 5 when zero.
	Concurrency int
}

// Failure records one account whose collection failed. CollectMany reports
// these out of band instead of aborting the batch.
type Failure struct {
	Account domain.Account
	Err     error
}

type Client interface {
	// Collect gathers one account's liked posts into a table.
	Collect(ctx context.Context, account domain.Account, opts Options) (domain.LikeTable, error)

	// CollectMany fans Collect out over a bounded worker pool. A failing
	// account contributes an empty result and an entry in the returned
	// failures; the combined table keeps input account order.
	CollectMany(ctx context.Context, accounts []domain.Account, opts ManyOptions) (domain.LikeTable, []Failure)

	// ExtractLikers pages through the accounts that liked the given post,
	// identified by canonical URL or at:// URI.
	ExtractLikers(ctx context.Context, postRef string, maxLikers int, interPageDelay time.Duration) ([]domain.LikerRecord, error)

	// ExcludeFollowed returns the candidates the reference account does not
	// already follow, in input order.
	ExcludeFollowed(ctx context.Context, reference domain.Account, candidates []domain.Account) ([]domain.Account, error)
}
