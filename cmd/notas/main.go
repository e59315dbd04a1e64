package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/notasmx/notas-service/internal/config"
	"github.com/notasmx/notas-service/internal/db"
	"github.com/notasmx/notas-service/internal/metrics"
	"github.com/notasmx/notas-service/internal/notifier"
	"github.com/notasmx/notas-service/internal/pdf"
	"github.com/notasmx/notas-service/internal/port"
	"github.com/notasmx/notas-service/internal/repository"
	"github.com/notasmx/notas-service/internal/s3store"
	"github.com/notasmx/notas-service/internal/service"
	"github.com/notasmx/notas-service/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("service exited")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db.NewPool: %w", err)
	}
	defer pool.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("awsconfig.LoadDefaultConfig: %w", err)
	}
	artifacts := s3store.New(s3.NewFromConfig(awsCfg), cfg.S3Bucket)

	var mailNotifier port.Notifier
	if cfg.MailNotifierURL != "" {
		mailNotifier = notifier.New(cfg.MailNotifierURL)
	} else {
		log.Info("MAIL_NOTIFIER_URL not set, notifications disabled")
	}

	svc := service.New(pool, repository.NewCatalog(pool), repository.NewNota(pool),
		artifacts, pdf.NewRenderer(), mailNotifier)

	registry := prometheus.NewRegistry()
	m := metrics.New(cfg.Env, registry)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           transport.Router(svc, m, metrics.Handler(registry)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
