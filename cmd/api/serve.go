package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pet-social/internal/adapters/auth/jwtauth"
	"pet-social/internal/adapters/notify/redisnotify"
	"pet-social/internal/adapters/recommender/openai"
	"pet-social/internal/adapters/uploads/localstore"
	"pet-social/internal/adapters/uploads/s3store"
	"pet-social/internal/config"
	"pet-social/internal/platform/logger"
	"pet-social/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, cleanup, err := buildOptions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.Bool("dev_auth", cfg.DevAuth()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildOptions traduce la config a adapters concretos.
func buildOptions(ctx context.Context, cfg config.Config, log *zap.Logger) (router.Options, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (router.Options, func(), error) {
		cleanup()
		return router.Options{}, func() {}, err
	}

	opts := router.Options{
		Logger:             log,
		AlwaysRegenerate:   cfg.Recommendations.AlwaysRegenerate,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}

	store, err := openStore(ctx, cfg, cfg.DBAutoMigrate)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() { _ = store.Close() })
	opts.Store = store

	if !cfg.DevAuth() {
		a, err := jwtauth.New(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return fail(err)
		}
		opts.AuthVerifier, opts.TokenIssuer = a, a
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID")
	}

	if cfg.Recommendations.APIKey != "" || cfg.Recommendations.BaseURL != "" {
		gen, err := openai.New(openai.Options{
			BaseURL: cfg.Recommendations.BaseURL,
			APIKey:  cfg.Recommendations.APIKey,
			Model:   cfg.Recommendations.Model,
			Timeout: cfg.Recommendations.Timeout,
		})
		if err != nil {
			return fail(err)
		}
		opts.Generator = gen
	}

	if cfg.RedisAddr != "" {
		rdb, err := redisnotify.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		opts.Notifier = redisnotify.New(rdb, log)
	}

	switch cfg.Uploads.Driver {
	case "s3":
		up, err := s3store.New(ctx, s3store.Options{
			Bucket:          cfg.Uploads.S3Bucket,
			Region:          cfg.Uploads.S3Region,
			Endpoint:        cfg.Uploads.S3Endpoint,
			AccessKeyID:     cfg.Uploads.S3AccessKeyID,
			SecretAccessKey: cfg.Uploads.S3SecretAccessKey,
			PublicURL:       cfg.Uploads.PublicURL,
		})
		if err != nil {
			return fail(err)
		}
		opts.Uploader = up
	default:
		up, err := localstore.New(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
		if err != nil {
			return fail(err)
		}
		opts.Uploader = up
		// Solo se sirve desde el propio proceso si la URL pública es un path local.
		if len(cfg.Uploads.PublicURL) > 0 && cfg.Uploads.PublicURL[0] == '/' {
			opts.Files = up.Handler(cfg.Uploads.PublicURL)
			opts.FilesPrefix = cfg.Uploads.PublicURL
		}
	}

	return opts, cleanup, nil
}
