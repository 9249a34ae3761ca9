package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/MexicoHamburger/Copoto/internal/adapters/http/middleware"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	res "github.com/MexicoHamburger/Copoto/pkg/http"
)

type TempPostHandler struct {
	service usecase.TempPostService
}

func NewTempPostHandler(s usecase.TempPostService) *TempPostHandler {
	return &TempPostHandler{service: s}
}

type tempPostRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

func (h *TempPostHandler) Save(c echo.Context) error {
	req := new(tempPostRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	draft, err := h.service.Save(c.Request().Context(), requestIDFromCtx(c), ident, req.Title, req.Contents)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Temp post saved successfully", draft)
}

func (h *TempPostHandler) List(c echo.Context) error {
	ident, _ := authmw.Identity(c)
	drafts, err := h.service.List(c.Request().Context(), ident)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Fetched temp posts successfully", drafts)
}

func (h *TempPostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid temp post id")
	}
	ident, _ := authmw.Identity(c)
	draft, err := h.service.Get(c.Request().Context(), ident, id)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Temp post fetched successfully", draft)
}

func (h *TempPostHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid temp post id")
	}
	ident, _ := authmw.Identity(c)
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), ident, id); err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Temp post deleted successfully", nil)
}
