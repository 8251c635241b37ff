package domain

// LikeRecord is one row of a collected like table: a post some account
// liked, plus whatever detail was fetched for it. LikedAt is the server's
// createdAt timestamp, threaded through unmodified.
type LikeRecord struct {
	ProfileID     string
	ProfileHandle string

	URI     string
	URL     string
	Author  string
	LikedAt string

	Text              string
	AuthorHandle      string
	AuthorDisplayName string
	RepostCount       int
	LikeCount         int
	ReplyCount        int
}

// LikeTable is the column-oriented aggregate of like records across one or
// more accounts. Row order is insertion order: pagination order within an
// account, accounts concatenated in input order. Columns lists the fields
// that are populated for downstream consumers; fields absent from every row
// are left out of the projection entirely.
type LikeTable struct {
	Rows    []LikeRecord
	Columns []string
}

// Append adds rows preserving insertion order.
func (t *LikeTable) Append(rows ...LikeRecord) {
	t.Rows = append(t.Rows, rows...)
}

// Len returns the number of rows.
func (t *LikeTable) Len() int {
	return len(t.Rows)
}

// Accounts returns the distinct profile IDs in first-seen order.
func (t *LikeTable) Accounts() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	var out []string
	for _, r := range t.Rows {
		if _, ok := seen[r.ProfileID]; ok {
			continue
		}
		seen[r.ProfileID] = struct{}{}
		out = append(out, r.ProfileID)
	}
	return out
}

// URLSet returns the set of post URLs one account has liked.
func (t *LikeTable) URLSet(profileID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range t.Rows {
		if r.ProfileID == profileID {
			set[r.URL] = struct{}{}
		}
	}
	return set
}

// LikerRecord is the reverse relation: an account that liked a given post.
type LikerRecord struct {
	DID         string
	Handle      string
	DisplayName string
}
