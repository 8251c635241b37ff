package domain

import "strings"

// Account identifies one Bluesky account. DID is the durable identifier and
// is always populated once the account has passed through identity
// resolution; Handle is kept for display when it is known.
type Account struct {
	DID    string
	Handle string
}

// ParseAccount interprets a bare string as either a DID or a handle.
func ParseAccount(s string) Account {
	s = strings.TrimSpace(strings.TrimPrefix(s, "@"))
	if strings.HasPrefix(s, "did:") {
		return Account{DID: s}
	}
	return Account{Handle: s}
}

// Resolved reports whether the account carries a DID.
func (a Account) Resolved() bool {
	return a.DID != ""
}

// Label returns the best human-readable form of the account.
func (a Account) Label() string {
	if a.Handle != "" {
		return a.Handle
	}
	return a.DID
}
