package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/MexicoHamburger/Copoto/internal/adapters/http/middleware"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	res "github.com/MexicoHamburger/Copoto/pkg/http"
)

type UserHandler struct {
	service usecase.UserService
}

func NewUserHandler(s usecase.UserService) *UserHandler { return &UserHandler{service: s} }

type registerRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type verifyIDRequest struct {
	ID string `json:"id"`
}

type verifyNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type updateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Nickname: u.Nickname, CreatedAt: u.CreatedAt}
}

func (h *UserHandler) Register(c echo.Context) error {
	req := new(registerRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	user, err := h.service.Register(c.Request().Context(), requestIDFromCtx(c), req.ID, req.Password, req.Nickname)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "User registered successfully", toUserResponse(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	tokens, err := h.service.Login(c.Request().Context(), requestIDFromCtx(c), req.ID, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Login successful", tokens)
}

func (h *UserHandler) Refresh(c echo.Context) error {
	req := new(refreshRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	tokens, err := h.service.Refresh(c.Request().Context(), requestIDFromCtx(c), req.RefreshToken)
	if err != nil {
		// A token that never existed is a 401 here, unlike other lookups;
		// an expired one is a 403 so the client knows to log in again.
		if errors.Is(err, domain.ErrNotFound) {
			return res.Fail(c, http.StatusUnauthorized, "Refresh token not found")
		}
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Token refreshed", tokens)
}

func (h *UserHandler) Logout(c echo.Context) error {
	ident, _ := authmw.Identity(c)
	terminated, err := h.service.Logout(c.Request().Context(), requestIDFromCtx(c), ident)
	if err != nil {
		return fail(c, err)
	}
	message := "Logout successful"
	if !terminated {
		message = "No active session found"
	}
	return res.JSON(c, http.StatusOK, message, map[string]bool{"terminated": terminated})
}

func (h *UserHandler) Profile(c echo.Context) error {
	ident, _ := authmw.Identity(c)
	profile, err := h.service.Profile(c.Request().Context(), c.Param("user_id"), ident)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "User profile found", profile)
}

func (h *UserHandler) VerifyID(c echo.Context) error {
	req := new(verifyIDRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	exists, err := h.service.IDExists(c.Request().Context(), req.ID)
	if err != nil {
		return fail(c, err)
	}
	if !exists {
		return res.JSON(c, http.StatusNotFound, "User does not exist", false)
	}
	return res.JSON(c, http.StatusOK, "User exists", true)
}

func (h *UserHandler) VerifyNickname(c echo.Context) error {
	req := new(verifyNicknameRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	taken, err := h.service.NicknameTaken(c.Request().Context(), req.Nickname)
	if err != nil {
		return fail(c, err)
	}
	if taken {
		return res.JSON(c, http.StatusConflict, "Nickname is already in use", false)
	}
	return res.JSON(c, http.StatusOK, "Nickname is available", true)
}

func (h *UserHandler) UpdateNickname(c echo.Context) error {
	req := new(updateNicknameRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	user, err := h.service.UpdateNickname(c.Request().Context(), requestIDFromCtx(c), ident, req.Nickname)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Nickname updated", toUserResponse(user))
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	req := new(updatePasswordRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	if err := h.service.UpdatePassword(c.Request().Context(), requestIDFromCtx(c), ident, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Password updated", nil)
}

func (h *UserHandler) All(c echo.Context) error {
	users, err := h.service.AllUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	list := make([]userResponse, 0, len(users))
	for i := range users {
		list = append(list, toUserResponse(&users[i]))
	}
	return res.JSON(c, http.StatusOK, "Fetched all users", list)
}
