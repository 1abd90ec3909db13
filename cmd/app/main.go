// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"guestpass/internal/config"
	"guestpass/internal/domain/ports/adapter"
	"guestpass/internal/domain/ports/repository"
	pg "guestpass/internal/infra/db/postgres"
	"guestpass/internal/infra/logging"
	"guestpass/internal/infra/mail"
	"guestpass/internal/infra/metrics"
	"guestpass/internal/infra/qr"
	red "guestpass/internal/infra/redis"
	"guestpass/internal/infra/web"
	"guestpass/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Repositories ----
	var requestRepo repository.AccessRequestRepository = pg.NewAccessRequestRepo(pool)
	tokenRepo := pg.NewAdmissionTokenRepo(pool)
	adminRepo := pg.NewAdminAccountRepo(pool)
	txm := pg.NewTxManager(pool)

	// ---- Redis request cache (optional) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		requestRepo = pg.NewRequestRepoCacheDecorator(requestRepo, redisClient, cfg.Redis.TTL)
		logger.Info().Msg("request cache enabled")
	}

	// ---- Collaborators ----
	imager := qr.NewGenerator(cfg.Server.BaseURL)
	var notifier adapter.Notifier
	if cfg.SMTP.Host != "" && !cfg.Runtime.Dev {
		notifier = mail.NewSMTPNotifier(cfg.SMTP)
	} else {
		notifier = mail.NewNoopNotifier(logger)
		logger.Warn().Msg("smtp not configured: admission emails will be suppressed")
	}

	// ---- Use cases ----
	requestUC := usecase.NewRequestUseCase(requestRepo)
	approvalUC := usecase.NewApprovalUseCase(requestRepo, tokenRepo, txm, notifier, imager, cfg.Server.BaseURL, logger)
	redemptionUC := usecase.NewRedemptionUseCase(tokenRepo, requestRepo, logger)
	authUC := usecase.NewAuthUseCase(adminRepo)

	// ---- HTTP ----
	sessions := web.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL, !cfg.Runtime.Dev)
	server := web.NewServer(requestUC, approvalUC, redemptionUC, authUC, sessions, logger)

	// ---- Graceful shutdown ----
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		logger.Info().Msg("shutdown requested")
		cancel()
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := web.Serve(ctx, addr, server.Router(), logger); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
