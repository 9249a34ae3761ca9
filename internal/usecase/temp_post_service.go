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

// TempPostService manages per-user draft posts. Drafts are private: every
// operation, reads included, checks ownership.
type TempPostService interface {
	Save(ctx context.Context, traceID string, ident *domain.User, title, contents string) (*domain.TempPost, error)
	List(ctx context.Context, ident *domain.User) ([]domain.TempPost, error)
	Get(ctx context.Context, ident *domain.User, id uint) (*domain.TempPost, error)
	Delete(ctx context.Context, traceID string, ident *domain.User, id uint) error
}

type tempPostService struct {
	cfg        *config.Config
	logger     pkglog.Logger
	drafts     repo.TempPostRepository
	classifier moderation.Classifier
}

func NewTempPostService(cfg *config.Config, logger pkglog.Logger, drafts repo.TempPostRepository, classifier moderation.Classifier) TempPostService {
	return &tempPostService{cfg: cfg, logger: logger, drafts: drafts, classifier: classifier}
}

func (s *tempPostService) Save(ctx context.Context, traceID string, ident *domain.User, title, contents string) (*domain.TempPost, error) {
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

	// Cap per user: saving beyond the limit evicts the oldest draft.
	count, err := s.drafts.CountByUser(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.cfg.TempPostLimit) {
		oldest, err := s.drafts.FindOldestByUser(ctx, ident.ID)
		if err != nil {
			return nil, err
		}
		if err := s.drafts.Delete(ctx, oldest.ID); err != nil {
			return nil, err
		}
	}

	draft := &domain.TempPost{Title: title, Contents: contents, UserID: ident.ID}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("temp_post_id", draft.ID).Msg("temp post saved")
	return draft, nil
}

func (s *tempPostService) List(ctx context.Context, ident *domain.User) ([]domain.TempPost, error) {
	if ident == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	return s.drafts.FindByUser(ctx, ident.ID)
}

func (s *tempPostService) Get(ctx context.Context, ident *domain.User, id uint) (*domain.TempPost, error) {
	if ident == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "temp post")
	}
	if err := AuthorizeOwner(draft.UserID, ident); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *tempPostService) Delete(ctx context.Context, traceID string, ident *domain.User, id uint) error {
	if ident == nil {
		return domain.ErrAuthenticationRequired
	}
	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		return translateNotFound(err, "temp post")
	}
	if err := AuthorizeOwner(draft.UserID, ident); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		return err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Uint("temp_post_id", id).Msg("temp post deleted")
	return nil
}
