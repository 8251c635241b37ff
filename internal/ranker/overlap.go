// Package ranker scores candidate accounts against a reference account
// over a collected like table. Both strategies return results sorted
// descending by score, ties keeping encounter order.
package ranker

import (
	"sort"

	"github.com/compmotifs/likeminds/internal/domain"
)

// ByOverlap ranks every other account in the table by how much of its like
// set falls inside the reference account's like set:
// |candidate ∩ reference| / |candidate|. The denominator is deliberately
// the candidate's own set size, so a candidate whose likes are a near-subset
// of the reference's scores high regardless of how much the reference likes
// overall. Accounts with no likes are excluded rather than scored.
func ByOverlap(table domain.LikeTable, referenceID string) []domain.SimilarityResult {
	referenceSet := table.URLSet(referenceID)
	if len(referenceSet) == 0 {
		return nil
	}

	var results []domain.SimilarityResult
	for _, profileID := range table.Accounts() {
		if profileID == referenceID {
			continue
		}
		own := table.URLSet(profileID)
		if len(own) == 0 {
			continue
		}

		intersection := 0
		for url := range own {
			if _, ok := referenceSet[url]; ok {
				intersection++
			}
		}
		results = append(results, domain.SimilarityResult{
			ProfileID: profileID,
			Score:     float64(intersection) / float64(len(own)),
		})
	}

	sortDescending(results)
	return results
}

// TopN truncates a ranking to its best n entries.
func TopN(results []domain.SimilarityResult, n int) []domain.SimilarityResult {
	if n >= 0 && len(results) > n {
		return results[:n]
	}
	return results
}

func sortDescending(results []domain.SimilarityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
