package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/MexicoHamburger/Copoto/config"
	"github.com/MexicoHamburger/Copoto/internal/adapters/moderation"
	natsadapter "github.com/MexicoHamburger/Copoto/internal/adapters/nats"
	repo "github.com/MexicoHamburger/Copoto/internal/adapters/postgres"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

type PostService interface {
	Create(ctx context.Context, traceID string, ident *domain.User, title, contents, typ string) (*domain.Post, error)
	Get(ctx context.Context, postID uint) (*domain.Post, error)
	All(ctx context.Context) ([]domain.Post, error)
	ByType(ctx context.Context, typ string) ([]domain.Post, error)
	Update(ctx context.Context, traceID string, ident *domain.User, postID uint, title, contents, typ string) (*domain.Post, error)
	Delete(ctx context.Context, traceID string, ident *domain.User, postID uint) error
}

type postService struct {
	cfg        *config.Config
	logger     pkglog.Logger
	posts      repo.PostRepository
	classifier moderation.Classifier
	events     natsadapter.EventPublisher
}

func NewPostService(cfg *config.Config, logger pkglog.Logger, posts repo.PostRepository, classifier moderation.Classifier, events natsadapter.EventPublisher) PostService {
	return &postService{cfg: cfg, logger: logger, posts: posts, classifier: classifier, events: events}
}

func (s *postService) Create(ctx context.Context, traceID string, ident *domain.User, title, contents, typ string) (*domain.Post, error) {
	if ident == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(contents) == "" {
		return nil, fmt.Errorf("contents are required: %w", domain.ErrValidation)
	}
	if err := checkModeration(ctx, s.classifier, s.cfg.ModerationFailOpen, s.logger, title, contents); err != nil {
		return nil, err
	}

	// Owner comes from the authenticated identity, never the payload.
	post := &domain.Post{Title: title, Contents: contents, Type: typ, UserID: ident.ID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if s.events != nil {
		_ = s.events.PostCreated(ctx, post.PostID, post.UserID)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("post_id", post.PostID).Msg("post created")
	return post, nil
}

func (s *postService) Get(ctx context.Context, postID uint) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, translateNotFound(err, "post")
	}
	post.ViewCount++
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) All(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *postService) ByType(ctx context.Context, typ string) ([]domain.Post, error) {
	return s.posts.FindByType(ctx, typ)
}

func (s *postService) Update(ctx context.Context, traceID string, ident *domain.User, postID uint, title, contents, typ string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, translateNotFound(err, "post")
	}
	if err := AuthorizeOwner(post.UserID, ident); err != nil {
		return nil, err
	}
	if strings.TrimSpace(contents) == "" && strings.TrimSpace(title) == "" && strings.TrimSpace(typ) == "" {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrValidation)
	}
	var changed []string
	if strings.TrimSpace(title) != "" {
		changed = append(changed, title)
	}
	if strings.TrimSpace(contents) != "" {
		changed = append(changed, contents)
	}
	if err := checkModeration(ctx, s.classifier, s.cfg.ModerationFailOpen, s.logger, changed...); err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) != "" {
		post.Title = title
	}
	if strings.TrimSpace(contents) != "" {
		post.Contents = contents
	}
	if strings.TrimSpace(typ) != "" {
		post.Type = typ
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("post_id", post.PostID).Msg("post updated")
	return post, nil
}

func (s *postService) Delete(ctx context.Context, traceID string, ident *domain.User, postID uint) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return translateNotFound(err, "post")
	}
	if err := AuthorizeOwner(post.UserID, ident); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("post_id", postID).Msg("post deleted")
	return nil
}

func translateNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}
