package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MexicoHamburger/Copoto/internal/domain"
	res "github.com/MexicoHamburger/Copoto/pkg/http"
)

// fail maps service error kinds to status codes at the boundary. Unknown
// errors become an opaque 500; their detail is for logs only.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return res.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return res.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return res.Fail(c, http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return res.Fail(c, http.StatusForbidden, "You are not allowed to modify this resource")
	case errors.Is(err, domain.ErrModerationRejected):
		return res.Fail(c, http.StatusForbidden, "Content was flagged by moderation and was not saved")
	case errors.Is(err, domain.ErrExpired):
		return res.Fail(c, http.StatusForbidden, "Refresh token expired. Please login again.")
	case errors.Is(err, domain.ErrNotFound):
		return res.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return res.Fail(c, http.StatusConflict, err.Error())
	default:
		return res.Fail(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
