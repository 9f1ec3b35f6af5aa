package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"chirp/config"
	"chirp/internal/delivery/http"
	"chirp/internal/delivery/http/middleware"
	"chirp/internal/delivery/http/router"
	"chirp/internal/delivery/http/router/handler"
	"chirp/internal/delivery/ws"
	"chirp/internal/infra/auth"
	logs "chirp/internal/infra/log"
	"chirp/internal/infra/persistence/postgres"
	"chirp/internal/infra/storage"
	"chirp/internal/usecase/impl"

	"github.com/pkg/errors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the whole dependency graph by hand, in dependency order. There is
// no container; every component receives its collaborators explicitly.
func run() error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logs.New(cfg)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}

	baseURL, err := url.Parse(cfg.HTTP.BaseURL)
	if err != nil {
		return errors.Wrap(err, "parse http.baseUrl")
	}

	db, err := postgres.New(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "connect postgres")
	}
	defer func() {
		if closeErr := postgres.Close(db); closeErr != nil {
			logger.Error("Failed to close database", slog.Any("error", closeErr))
		}
	}()

	txManager := postgres.NewTransactionManager(db, baseURL)
	userRepo := postgres.NewUserRepository(db, baseURL)
	postRepo := postgres.NewPostRepository(db, baseURL)
	commentRepo := postgres.NewCommentRepository(db, baseURL)
	chatRepo := postgres.NewChatRepository(db, baseURL)

	tokenSvc, err := auth.NewJWTService(cfg)
	if err != nil {
		return errors.Wrap(err, "build token service")
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	imageStore, err := storage.NewLocalImageStore(cfg.Storage.TempDir, cfg.Storage.PostImageDir)
	if err != nil {
		return errors.Wrap(err, "build image store")
	}

	authUC := impl.NewAuthService(txManager, userRepo, hasher, tokenSvc, logger)
	userUC := impl.NewUserService(txManager, userRepo, logger)
	postUC := impl.NewPostService(txManager, postRepo, imageStore, logger)
	commentUC := impl.NewCommentService(txManager, postRepo, commentRepo, logger)
	chatUC := impl.NewChatService(txManager, chatRepo, logger)

	authMW := middleware.NewAuthMiddleware(tokenSvc, userUC)
	errMW := middleware.NewErrorMiddleware(logger)
	gateway := ws.NewGateway(tokenSvc, userUC, chatUC, logger)

	r := router.New(
		cfg,
		authMW,
		handler.NewAuthHandler(authUC, logger),
		handler.NewUserHandler(authUC, userUC, logger),
		handler.NewPostHandler(postUC, logger),
		handler.NewCommentHandler(commentUC, logger),
		handler.NewChatHandler(chatUC, logger),
		gateway,
		postUC,
		commentUC,
	)

	server := http.NewServer(cfg, logger, r, errMW)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	return server.Shutdown(context.Background())
}
