package identity

import (
	"context"

	"github.com/compmotifs/likeminds/internal/domain"
)

// Resolver maps between the two account identity forms and locates the
// data host that serves an account's repository.
type Resolver interface {
	// ResolveHandle converts a handle to its DID.
	ResolveHandle(ctx context.Context, handle string) (string, error)

	// ServiceEndpoint returns the PDS base URL publishing the DID's repo.
	ServiceEndpoint(ctx context.Context, did string) (string, error)

	// Normalize fills in the account's DID, resolving the handle when
	// needed. Accounts that already carry a DID pass through untouched.
	Normalize(ctx context.Context, account domain.Account) (domain.Account, error)
}
