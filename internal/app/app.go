package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/MexicoHamburger/Copoto/config"
	httpadapter "github.com/MexicoHamburger/Copoto/internal/adapters/http"
	apiv1 "github.com/MexicoHamburger/Copoto/internal/adapters/http/api/v1"
	handlers "github.com/MexicoHamburger/Copoto/internal/adapters/http/api/v1/handlers"
	authmw "github.com/MexicoHamburger/Copoto/internal/adapters/http/middleware"
	"github.com/MexicoHamburger/Copoto/internal/adapters/moderation"
	natsadapter "github.com/MexicoHamburger/Copoto/internal/adapters/nats"
	repo "github.com/MexicoHamburger/Copoto/internal/adapters/postgres"
	"github.com/MexicoHamburger/Copoto/internal/domain"
	"github.com/MexicoHamburger/Copoto/internal/usecase"
	pkglog "github.com/MexicoHamburger/Copoto/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	log := pkglog.New(cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
		Logger:         loggerForGorm(cfg),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}, &domain.Post{}, &domain.Comment{}, &domain.TempPost{}); err != nil {
		return nil, err
	}

	// A short signing key is a fatal misconfiguration; nothing else is.
	signer, err := usecase.NewTokenSigner(cfg)
	if err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Warn().Err(err).Msg("nats connect failed, continuing without broker")
		nc = nil
	}

	userRepo := repo.NewUserRepository(db)
	refreshRepo := repo.NewRefreshTokenRepository(db)
	postRepo := repo.NewPostRepository(db)
	commentRepo := repo.NewCommentRepository(db)
	tempRepo := repo.NewTempPostRepository(db)
	classifier := moderation.NewHTTPClassifier(cfg.ModerationURL, cfg.ModerationTimeout)

	var events natsadapter.EventPublisher
	if nc != nil {
		events = natsadapter.NewEventPublisher(nc, cfg.NATSUserEventSubject, cfg.NATSPostEventSubject)
	}

	userSvc := usecase.NewUserService(cfg, log, userRepo, refreshRepo, postRepo, commentRepo, events, signer)
	postSvc := usecase.NewPostService(cfg, log, postRepo, classifier, events)
	commentSvc := usecase.NewCommentService(cfg, log, commentRepo, postRepo, userRepo, classifier)
	tempSvc := usecase.NewTempPostService(cfg, log, tempRepo, classifier)

	gate := authmw.NewAuthMiddleware(signer, userRepo)
	router := httpadapter.NewRouter(cfg, apiv1.NewRouter(
		handlers.NewUserHandler(userSvc),
		handlers.NewPostHandler(postSvc),
		handlers.NewCommentHandler(commentSvc),
		handlers.NewTempPostHandler(tempSvc),
		gate.Handler,
	))

	if nc != nil {
		verifyHandler := natsadapter.NewVerifyHandler(signer)
		if err := verifyHandler.Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName); err != nil {
			log.Warn().Err(err).Msg("verify subscription failed")
		}
	}

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: log, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Silent
	switch cfg.AppEnv {
	case "local":
		level = logger.Info
	default:
		level = logger.Warn
	}
	return logger.Default.LogMode(level)
}
