package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/MexicoHamburger/Copoto/internal/adapters/http/middleware"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	res "github.com/MexicoHamburger/Copoto/pkg/http"
)

type PostHandler struct {
	service usecase.PostService
}

func NewPostHandler(s usecase.PostService) *PostHandler { return &PostHandler{service: s} }

type postCreateRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
	Type     string `json:"type"`
}

type postUpdateRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
	Type     string `json:"type"`
}

func (h *PostHandler) Create(c echo.Context) error {
	req := new(postCreateRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	post, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), ident, req.Title, req.Contents, req.Type)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Post created successfully", post)
}

func (h *PostHandler) Get(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid post id")
	}
	post, err := h.service.Get(c.Request().Context(), postID)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Post fetched successfully", post)
}

func (h *PostHandler) All(c echo.Context) error {
	posts, err := h.service.All(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Posts fetched successfully", posts)
}

func (h *PostHandler) ByType(c echo.Context) error {
	posts, err := h.service.ByType(c.Request().Context(), c.Param("type"))
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Posts fetched successfully", posts)
}

func (h *PostHandler) Update(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid post id")
	}
	req := new(postUpdateRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	post, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), ident, postID, req.Title, req.Contents, req.Type)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Post updated successfully", post)
}

func (h *PostHandler) Delete(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid post id")
	}
	ident, _ := authmw.Identity(c)
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), ident, postID); err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Post deleted successfully", nil)
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
