package usecase

import (
	"fmt"

	"github.com/MexicoHamburger/Copoto/internal/domain"
)

// AuthorizeOwner is the single ownership decision applied to every mutation
// of an owned resource. Pure; no I/O.
func AuthorizeOwner(ownerID string, ident *domain.User) error {
	if ident == nil {
		return domain.ErrAuthenticationRequired
	}
	if ident.ID != ownerID {
		return fmt.Errorf("user %s does not own resource of %s: %w", ident.ID, ownerID, domain.ErrAuthorizationDenied)
	}
	return nil
}
