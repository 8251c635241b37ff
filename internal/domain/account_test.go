package domain

import "testing"

func TestParseAccount(t *testing.T) {
	tests := []struct {
		input string
		want  Account
	}{
		{"alice.bsky.social", Account{Handle: "alice.bsky.social"}},
		{"@alice.bsky.social", Account{Handle: "alice.bsky.social"}},
		{"did:plc:abc123", Account{DID: "did:plc:abc123"}},
		{"did:web:example.com", Account{DID: "did:web:example.com"}},
		{"  alice.bsky.social  ", Account{Handle: "alice.bsky.social"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAccount(tt.input)
			if got != tt.want {
				t.Errorf("ParseAccount(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAccountLabel(t *testing.T) {
	if got := (Account{DID: "did:plc:abc", Handle: "alice.bsky.social"}).Label(); got != "alice.bsky.social" {
		t.Errorf("Label() = %q, want handle", got)
	}
	if got := (Account{DID: "did:plc:abc"}).Label(); got != "did:plc:abc" {
		t.Errorf("Label() = %q, want DID", got)
	}
}

func TestAccountResolved(t *testing.T) {
	if (Account{Handle: "alice.bsky.social"}).Resolved() {
		t.Error("handle-only account reported as resolved")
	}
	if !(Account{DID: "did:plc:abc"}).Resolved() {
		t.Error("account with DID reported as unresolved")
	}
}
