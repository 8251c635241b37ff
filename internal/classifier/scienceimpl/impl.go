package scienceimpl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/compmotifs/likeminds/internal/classifier"
)

// ScienceImpl flags posts that look scientific: either the text carries
// research-flavored keywords, or it links into a known scholarly domain or
// a paper-shaped URL path.
type ScienceImpl struct{}

func New() *ScienceImpl {
	return &ScienceImpl{}
}

var _ classifier.Classifier = (*ScienceImpl)(nil)

var (
	keywordPattern = regexp.MustCompile(`(?i)\b(science|research|study|experiment|data|phd|publication|scientific)\b`)

	urlPattern = regexp.MustCompile(`https?://\S+`)

	doiPattern = regexp.MustCompile(`doi\.org/10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`)

	paperPathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/pdf/[^/]+\.pdf$`),
		regexp.MustCompile(`/doi/(?:abs|full|pdf)/10\.\d{4,9}/`),
		regexp.MustCompile(`/article/\d+`),
		regexp.MustCompile(`/content/\d+/\d+/\w+`),
		regexp.MustCompile(`/science/article/pii/\w+`),
		regexp.MustCompile(`/pmid/\d+`),
		regexp.MustCompile(`/pmc/articles/PMC\d+`),
		regexp.MustCompile(`/abstract/\d+`),
		regexp.MustCompile(`/full/\d+`),
	}
)

func (s *ScienceImpl) Relevant(text string) bool {
	if keywordPattern.MatchString(text) {
		return true
	}
	for _, link := range urlPattern.FindAllString(text, -1) {
		if IsScientificURL(strings.TrimRight(link, ".,;)")) {
			return true
		}
	}
	return false
}

// IsScientificURL reports whether a URL points at a scholarly domain or a
// paper-shaped path.
func IsScientificURL(link string) bool {
	if doiPattern.MatchString(link) {
		return true
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

	for _, domain := range scientificDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	for _, pattern := range paperPathPatterns {
		if pattern.MatchString(link) {
			return true
		}
	}
	return false
}
