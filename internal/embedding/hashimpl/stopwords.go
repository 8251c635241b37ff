package hashimpl

import "strings"

// stopwords drops function words plus the social-media and URL noise terms
// that dominate post text without carrying topical signal.
var stopwords = func() map[string]struct{} {
	words := strings.Fields(`
		a about above after again all am an and any are aren't as at be
		because been before being below between both but by can't cannot
		could couldn't did didn't do does doesn't doing don't down during
		each few for from further had hadn't has hasn't have haven't having
		he her here hers herself him himself his how i if in into is isn't
		it its itself just me more most my myself no nor not of off on once
		only or other our ours ourselves out over own same she should
		shouldn't so some such than that the their theirs them themselves
		then there these they this those through to too under until up very
		was wasn't we were weren't what when where which while who whom why
		will with won't would wouldn't you your yours yourself yourselves

		www http https com org net bsky social app profile url link html
		htm php asp click tweet post like share follow dm retweet reply
		comment thread timeline feed pic photo image video bio don didn ll
		ve re amp gt lt
	`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
