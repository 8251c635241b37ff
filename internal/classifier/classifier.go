package classifier

import "github.com/compmotifs/likeminds/internal/domain"

// Classifier decides whether a post's text is on-topic. Implementations are
// injected; the pipeline never branches on which one is active.
type Classifier interface {
	Relevant(text string) bool
}

// FilterTable splits a like table into the rows the classifier keeps and
// the rows it removed, both preserving row order and the source columns.
func FilterTable(table domain.LikeTable, cl Classifier) (kept, removed domain.LikeTable) {
	kept.Columns = table.Columns
	removed.Columns = table.Columns
	for _, row := range table.Rows {
		if cl.Relevant(row.Text) {
			kept.Append(row)
		} else {
			removed.Append(row)
		}
	}
	return kept, removed
}
