package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/MexicoHamburger/Copoto/internal/adapters/http/middleware"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	res "github.com/MexicoHamburger/Copoto/pkg/http"
)

type CommentHandler struct {
	service usecase.CommentService
}

func NewCommentHandler(s usecase.CommentService) *CommentHandler { return &CommentHandler{service: s} }

type commentCreateRequest struct {
	PostID  uint   `json:"postId"`
	Content string `json:"content"`
}

type commentUpdateRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c echo.Context) error {
	req := new(commentCreateRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	comment, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), ident, req.PostID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comment created successfully", comment)
}

func (h *CommentHandler) Get(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid comment id")
	}
	comment, err := h.service.Get(c.Request().Context(), commentID)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comment fetched successfully", comment)
}

func (h *CommentHandler) ByPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid post id")
	}
	comments, err := h.service.ByPost(c.Request().Context(), postID)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comments fetched successfully", comments)
}

func (h *CommentHandler) ByUser(c echo.Context) error {
	comments, err := h.service.ByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comments fetched successfully", comments)
}

func (h *CommentHandler) Update(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid comment id")
	}
	req := new(commentUpdateRequest)
	if err := c.Bind(req); err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid payload")
	}
	ident, _ := authmw.Identity(c)
	comment, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), ident, commentID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return res.Fail(c, http.StatusBadRequest, "invalid comment id")
	}
	ident, _ := authmw.Identity(c)
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), ident, commentID); err != nil {
		return fail(c, err)
	}
	return res.JSON(c, http.StatusOK, "Comment deleted successfully", nil)
}
