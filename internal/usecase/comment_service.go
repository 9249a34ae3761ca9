package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MexicoHamburger/Copoto/config"
	"github.com/MexicoHamburger/Copoto/internal/adapters/moderation"
	repo "github.com/MexicoHamburger/Copoto/internal/adapters/postgres"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

type CommentService interface {
	Create(ctx context.Context, traceID string, ident *domain.User, postID uint, content string) (*domain.Comment, error)
	Get(ctx context.Context, commentID uint) (*domain.Comment, error)
	ByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
	ByUser(ctx context.Context, userID string) ([]domain.Comment, error)
	Update(ctx context.Context, traceID string, ident *domain.User, commentID uint, content string) (*domain.Comment, error)
	Delete(ctx context.Context, traceID string, ident *domain.User, commentID uint) error
}

type commentService struct {
	cfg        *config.Config
	logger     pkglog.Logger
	comments   repo.CommentRepository
	posts      repo.PostRepository
	users      repo.UserRepository
	classifier moderation.Classifier
}

func NewCommentService(cfg *config.Config, logger pkglog.Logger, comments repo.CommentRepository, posts repo.PostRepository, users repo.UserRepository, classifier moderation.Classifier) CommentService {
	return &commentService{cfg: cfg, logger: logger, comments: comments, posts: posts, users: users, classifier: classifier}
}

func (s *commentService) Create(ctx context.Context, traceID string, ident *domain.User, postID uint, content string) (*domain.Comment, error) {
	if ident == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, translateNotFound(err, "post")
	}
	if err := checkModeration(ctx, s.classifier, s.cfg.ModerationFailOpen, s.logger, content); err != nil {
		return nil, err
	}

	comment := &domain.Comment{Content: content, PostID: postID, UserID: ident.ID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("comment_id", comment.ID).Msg("comment created")
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, commentID uint) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, translateNotFound(err, "comment")
	}
	return comment, nil
}

func (s *commentService) ByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, translateNotFound(err, "post")
	}
	return s.comments.FindByPost(ctx, postID)
}

func (s *commentService) ByUser(ctx context.Context, userID string) ([]domain.Comment, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, translateNotFound(err, "user")
	}
	return s.comments.FindByUser(ctx, userID)
}

func (s *commentService) Update(ctx context.Context, traceID string, ident *domain.User, commentID uint, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, translateNotFound(err, "comment")
	}
	if err := AuthorizeOwner(comment.UserID, ident); err != nil {
		return nil, err
	}
	if err := checkModeration(ctx, s.classifier, s.cfg.ModerationFailOpen, s.logger, content); err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("comment_id", comment.ID).Msg("comment updated")
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, traceID string, ident *domain.User, commentID uint) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return translateNotFound(err, "comment")
	}
	if err := AuthorizeOwner(comment.UserID, ident); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("comment_id", commentID).Msg("comment deleted")
	return nil
}
