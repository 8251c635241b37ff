package recommenderimpl

import (
	"context"
	"fmt"

	"github.com/compmotifs/likeminds/internal/classifier"
	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/embedding"
	"github.com/compmotifs/likeminds/internal/identity"
	"github.com/compmotifs/likeminds/internal/ranker"
	"github.com/compmotifs/likeminds/internal/recommender"
	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/errors"
	"github.com/compmotifs/likeminds/pkg/logger"
	"go.uber.org/fx"
)

const defaultMaxSeedAccounts = 100

type Opts struct {
	fx.In

	Collector  collector.Client
	Resolver   identity.Resolver
	Classifier classifier.Classifier
	Embedder   embedding.Embedder
	Config     *config.Config
	Logger     logger.Logger
}

type RecommenderImpl struct {
	Collector  collector.Client
	Resolver   identity.Resolver
	Classifier classifier.Classifier
	Embedder   embedding.Embedder
	Config     *config.Config
	Logger     logger.Logger
}

func New(opts Opts) *RecommenderImpl {
	return &RecommenderImpl{
		Collector:  opts.Collector,
		Resolver:   opts.Resolver,
		Classifier: opts.Classifier,
		Embedder:   opts.Embedder,
		Config:     opts.Config,
		Logger:     opts.Logger.WithComponent("Recommender"),
	}
}

var _ recommender.Client = (*RecommenderImpl)(nil)

func (r *RecommenderImpl) Recommend(ctx context.Context, req recommender.Request) (*recommender.Recommendation, error) {
	seed, err := recommender.ParseSeedInput(req.SeedInput)
	if err != nil {
		return nil, err
	}

	reference, err := r.Resolver.Normalize(ctx, domain.ParseAccount(req.Reference))
	if err != nil {
		return nil, err
	}

	candidates, err := r.seedAccounts(ctx, seed, req.MaxSeedAccounts)
	if err != nil {
		return nil, err
	}

	if req.ExcludeFollowed {
		candidates, err = r.Collector.ExcludeFollowed(ctx, reference, candidates)
		if err != nil {
			return nil, err
		}
	}

	r.Logger.Info("Collecting likes for candidate pool",
		"reference", reference.Label(), "candidates", len(candidates))

	perAccount := req.PerAccountLikes
	if perAccount <= 0 {
		perAccount = r.Config.Collector.PerAccountLikes
	}

	table, failures := r.Collector.CollectMany(ctx, append(candidates, reference), collector.ManyOptions{
		PerAccountCount: perAccount,
		IncludeText:     true,
		InterPageDelay:  r.Config.Bluesky.InterPageDelay,
		Concurrency:     r.Config.Collector.Concurrency,
	})

	var removed []domain.LikeRecord
	if req.ApplyFilter {
		kept, removedTable := classifier.FilterTable(table, r.Classifier)
		removed = removedTable.Rows
		table = kept
	}

	results, err := r.rank(ctx, table, reference, req.Strategy)
	if err != nil {
		return nil, err
	}
	results = rankedTopN(results, req.TopN)

	return &recommender.Recommendation{
		Results:        r.withHandles(results, candidates, table),
		RemovedByTopic: removed,
		Failed:         failures,
	}, nil
}

// seedAccounts expands the seed into the candidate pool: likers of the seed
// post, or the explicit handle list as given.
func (r *RecommenderImpl) seedAccounts(ctx context.Context, seed recommender.Seed, maxSeed int) ([]domain.Account, error) {
	if seed.PostURL == "" {
		return seed.Accounts, nil
	}

	if maxSeed <= 0 {
		maxSeed = defaultMaxSeedAccounts
	}
	likers, err := r.Collector.ExtractLikers(ctx, seed.PostURL, maxSeed, r.Config.Bluesky.InterPageDelay)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(likers))
	for _, liker := range likers {
		accounts = append(accounts, domain.Account{DID: liker.DID, Handle: liker.Handle})
	}
	return accounts, nil
}

func (r *RecommenderImpl) rank(ctx context.Context, table domain.LikeTable, reference domain.Account, strategy recommender.Strategy) ([]domain.SimilarityResult, error) {
	switch strategy {
	case recommender.StrategyVector:
		return ranker.ByVector(ctx, table, reference.DID, r.Embedder)
	case recommender.StrategyOverlap, "":
		return ranker.ByOverlap(table, reference.DID), nil
	default:
		return nil, errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("unknown strategy %q", strategy))
	}
}

func rankedTopN(results []domain.SimilarityResult, n int) []domain.SimilarityResult {
	if n <= 0 {
		return results
	}
	return ranker.TopN(results, n)
}

// withHandles re-attaches handles to ranked DIDs for display. Handle-only
// seeds reach this point without DIDs, so the collected rows are consulted
// as well.
func (r *RecommenderImpl) withHandles(results []domain.SimilarityResult, candidates []domain.Account, table domain.LikeTable) []recommender.RankedAccount {
	handles := make(map[string]string, len(candidates))
	for _, row := range table.Rows {
		if row.ProfileHandle != "" {
			handles[row.ProfileID] = row.ProfileHandle
		}
	}
	for _, account := range candidates {
		if account.DID != "" && account.Handle != "" {
			handles[account.DID] = account.Handle
		}
	}

	ranked := make([]recommender.RankedAccount, 0, len(results))
	for _, result := range results {
		ranked = append(ranked, recommender.RankedAccount{
			Account: domain.Account{DID: result.ProfileID, Handle: handles[result.ProfileID]},
			Score:   result.Score,
		})
	}
	return ranked
}
