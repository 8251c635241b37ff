package recommender

import (
	"context"
	"net/url"
	"strings"

	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/pkg/errors"
)

// Strategy selects the similarity ranking to apply.
type Strategy string

const (
	StrategyOverlap Strategy = "overlap"
	StrategyVector  Strategy = "vector"
)

// Seed is the parsed form of the free-text seed input: either one post URL
// whose likers become the candidate pool, or an explicit account list.
type Seed struct {
	PostURL  string
	Accounts []domain.Account
}

// ParseSeedInput accepts either a URL or a comma-separated list of handles.
func ParseSeedInput(input string) (Seed, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Seed{}, errors.Wrap(errors.ErrInvalidInput, "seed input cannot be empty")
	}

	if parsed, err := url.Parse(input); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != "" {
		return Seed{PostURL: input}, nil
	}

	var accounts []domain.Account
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		accounts = append(accounts, domain.ParseAccount(part))
	}
	if len(accounts) == 0 {
		return Seed{}, errors.Wrap(errors.ErrInvalidInput, "seed input must be a URL or a comma-separated list of handles")
	}
	return Seed{Accounts: accounts}, nil
}

// Request describes one recommendation run.
type Request struct {
	// Reference is the account to find matches for, as handle or DID.
	Reference string

	// SeedInput is a post URL or a comma-separated handle list.
	SeedInput string

	Strategy        Strategy
	TopN            int
	PerAccountLikes int
	ApplyFilter     bool
	ExcludeFollowed bool
	MaxSeedAccounts int
}

// RankedAccount pairs a candidate with its similarity score.
type RankedAccount struct {
	Account domain.Account
	Score   float64
}

// Recommendation is a finished run: the ranking plus what the topic filter
// removed and which candidate accounts failed to collect.
type Recommendation struct {
	Results        []RankedAccount
	RemovedByTopic []domain.LikeRecord
	Failed         []collector.Failure
}

type Client interface {
	Recommend(ctx context.Context, req Request) (*Recommendation, error)
}
