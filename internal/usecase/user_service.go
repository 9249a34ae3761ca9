package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MexicoHamburger/Copoto/config"
	natsadapter "github.com/MexicoHamburger/Copoto/internal/adapters/nats"
	repo "github.com/MexicoHamburger/Copoto/internal/adapters/postgres"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

type UserService interface {
	Register(ctx context.Context, traceID, id, password, nickname string) (*domain.User, error)
	Login(ctx context.Context, traceID, id, password string) (*Tokens, error)
	Refresh(ctx context.Context, traceID, refreshToken string) (*Tokens, error)
	Logout(ctx context.Context, traceID string, ident *domain.User) (bool, error)
	Profile(ctx context.Context, targetID string, ident *domain.User) (*Profile, error)
	IDExists(ctx context.Context, id string) (bool, error)
	NicknameTaken(ctx context.Context, nickname string) (bool, error)
	UpdateNickname(ctx context.Context, traceID string, ident *domain.User, nickname string) (*domain.User, error)
	UpdatePassword(ctx context.Context, traceID string, ident *domain.User, oldPassword, newPassword string) error
	AllUsers(ctx context.Context) ([]domain.User, error)
}

// Profile is what the profile endpoint renders. ID is filled only when the
// caller is looking at their own profile.
type Profile struct {
	ID        string           `json:"id,omitempty"`
	Nickname  string           `json:"nickname"`
	CreatedAt time.Time        `json:"created_at"`
	Posts     []domain.Post    `json:"posts"`
	Comments  []domain.Comment `json:"comments"`
}

type userService struct {
	cfg      *config.Config
	logger   pkglog.Logger
	users    repo.UserRepository
	refresh  repo.RefreshTokenRepository
	posts    repo.PostRepository
	comments repo.CommentRepository
	events   natsadapter.EventPublisher
	signer   TokenSigner
}

func NewUserService(cfg *config.Config, logger pkglog.Logger, users repo.UserRepository, refresh repo.RefreshTokenRepository, posts repo.PostRepository, comments repo.CommentRepository, events natsadapter.EventPublisher, signer TokenSigner) UserService {
	return &userService{cfg: cfg, logger: logger, users: users, refresh: refresh, posts: posts, comments: comments, events: events, signer: signer}
}

func (s *userService) Register(ctx context.Context, traceID, id, password, nickname string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, fmt.Errorf("nickname is required: %w", domain.ErrValidation)
	}
	if exists, err := s.users.ExistsByID(ctx, id); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("user id already in use: %w", domain.ErrConflict)
	}
	if taken, err := s.users.ExistsByNickname(ctx, nickname); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("nickname already in use: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{ID: id, PasswordHash: string(hash), Nickname: nickname}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if s.events != nil {
		_ = s.events.UserRegistered(ctx, user.ID, user.Nickname)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *userService) Login(ctx context.Context, traceID, id, password string) (*Tokens, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.signer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	session := &domain.RefreshToken{
		ID:         uuid.NewString(),
		Token:      uuid.NewString(),
		UserID:     user.ID,
		ExpiryDate: time.Now().Add(s.cfg.RefreshTTL),
	}
	if err := s.refresh.Replace(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("login")
	return &Tokens{AccessToken: access, RefreshToken: session.Token, ExpiresIn: int64(s.cfg.AccessTTL.Seconds())}, nil
}

func (s *userService) Refresh(ctx context.Context, traceID, refreshToken string) (*Tokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("refresh token is required: %w", domain.ErrValidation)
	}
	session, err := s.refresh.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh token: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if session.ExpiryDate.Before(time.Now()) {
		// One-way transition: the expired row is removed so a retry with
		// the same value reports NotFound, and the user must log in again.
		if _, err := s.refresh.DeleteByUser(ctx, session.UserID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("refresh token: %w", domain.ErrExpired)
	}
	access, err := s.signer.Issue(session.UserID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", session.UserID).Msg("token refreshed")
	// The refresh value is deliberately not rotated; the same value stays
	// valid until the next login or logout.
	return &Tokens{AccessToken: access, RefreshToken: session.Token, ExpiresIn: int64(s.cfg.AccessTTL.Seconds())}, nil
}

func (s *userService) Logout(ctx context.Context, traceID string, ident *domain.User) (bool, error) {
	if ident == nil {
		return false, domain.ErrAuthenticationRequired
	}
	existed, err := s.refresh.DeleteByUser(ctx, ident.ID)
	if err != nil {
		return false, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", ident.ID).Bool("terminated", existed).Msg("logout")
	return existed, nil
}

func (s *userService) Profile(ctx context.Context, targetID string, ident *domain.User) (*Profile, error) {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", targetID, domain.ErrNotFound)
		}
		return nil, err
	}
	posts, err := s.posts.FindByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.FindByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	profile := &Profile{Nickname: user.Nickname, CreatedAt: user.CreatedAt, Posts: posts, Comments: comments}
	if ident != nil && ident.ID == targetID {
		profile.ID = user.ID
	}
	return profile, nil
}

func (s *userService) IDExists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}
	return s.users.ExistsByID(ctx, id)
}

func (s *userService) NicknameTaken(ctx context.Context, nickname string) (bool, error) {
	if strings.TrimSpace(nickname) == "" {
		return false, fmt.Errorf("nickname is required: %w", domain.ErrValidation)
	}
	return s.users.ExistsByNickname(ctx, nickname)
}

func (s *userService) UpdateNickname(ctx context.Context, traceID string, ident *domain.User, nickname string) (*domain.User, error) {
	if ident == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, fmt.Errorf("nickname is required: %w", domain.ErrValidation)
	}
	if taken, err := s.users.ExistsByNickname(ctx, nickname); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("nickname already in use: %w", domain.ErrConflict)
	}
	user, err := s.users.FindByID(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	user.Nickname = nickname
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("nickname updated")
	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, traceID string, ident *domain.User, oldPassword, newPassword string) error {
	if ident == nil {
		return domain.ErrAuthenticationRequired
	}
	if newPassword == "" {
		return fmt.Errorf("new password is required: %w", domain.ErrValidation)
	}
	user, err := s.users.FindByID(ctx, ident.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("password updated")
	return nil
}

func (s *userService) AllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}
