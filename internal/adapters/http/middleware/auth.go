package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	repo "github.com/MexicoHamburger/Copoto/internal/adapters/postgres"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	"github.com/MexicoHamburger/Copoto/internal/tokenverify"
)

const identityKey = "identity"

// AuthMiddleware is the per-request authentication gate. It only enriches:
// a missing, invalid or expired token, or a subject with no user row, all
// leave the request anonymous. Handlers that need an identity reject
// anonymous callers themselves, so read endpoints stay open.
type AuthMiddleware struct {
	parser tokenverify.Parser
	users  repo.UserRepository
}

func NewAuthMiddleware(parser tokenverify.Parser, users repo.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{parser: parser, users: users}
}

func (m *AuthMiddleware) Handler(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return next(c)
		}
		result, err := tokenverify.Verify(m.parser, parts[1], time.Now)
		if err != nil {
			return next(c)
		}
		user, err := m.users.FindByID(c.Request().Context(), result.UserID)
		if err != nil {
			return next(c)
		}
		c.Set(identityKey, user)
		return next(c)
	}
}

// Identity returns the authenticated user attached by the gate, if any.
func Identity(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(identityKey).(*domain.User)
	return user, ok && user != nil
}
