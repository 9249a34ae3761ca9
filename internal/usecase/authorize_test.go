package usecase

import (
	"errors"
	"testing"

	"github.com/MexicoHamburger/Copoto/internal/domain"
)

func TestAuthorizeOwnerAllowsOwner(t *testing.T) {
	ident := &domain.User{ID: "owner-a"}
	if err := AuthorizeOwner("owner-a", ident); err != nil {
		t.Fatalf("owner must be allowed: %v", err)
	}
}

func TestAuthorizeOwnerDeniesOtherUser(t *testing.T) {
	ident := &domain.User{ID: "owner-b"}
	err := AuthorizeOwner("owner-a", ident)
	if !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("expected authorization denied, got %v", err)
	}
}

func TestAuthorizeOwnerDeniesAnonymous(t *testing.T) {
	err := AuthorizeOwner("owner-a", nil)
	if !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}
