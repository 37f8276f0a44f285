package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/assets"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/mail"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/paypal"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/prices"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/receipt"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/sequence"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Counter store
	var store sequence.Store
	switch cfg.Receipt.CounterBackend {
	case "bolt":
		bolt, err := sequence.NewBoltStore(cfg.Receipt.CounterDBPath)
		if err != nil {
			log.Fatalf("opening counter db: %v", err)
		}
		defer bolt.Close()
		store = bolt
	default:
		store = sequence.NewFileStore(cfg.Receipt.CounterPath)
	}
	seq := sequence.NewSequencer(store, logger)

	// Template and signature assets
	var assetStore assets.Store
	if cfg.Receipt.S3Bucket != "" {
		s3Store, err := assets.NewS3Store(ctx, cfg.Receipt.S3Bucket)
		if err != nil {
			log.Fatalf("configuring asset bucket: %v", err)
		}
		assetStore = s3Store
		log.Infow("serving assets from S3", "bucket", cfg.Receipt.S3Bucket)
	} else {
		assetStore = assets.NewFSStore(cfg.Receipt.AssetsDir)
	}

	layout := receipt.DefaultLayout()
	if cfg.Receipt.LayoutPath != "" {
		loaded, err := receipt.LoadLayout(cfg.Receipt.LayoutPath)
		if err != nil {
			log.Fatalf("loading layout: %v", err)
		}
		layout = loaded
	}

	renderer := receipt.NewRenderer(assetStore, layout, logger)
	pipeline := receipt.NewService(seq, renderer, logger)

	// Outbound mail
	mailer := mail.NewSMTPSender(cfg.SMTP, logger)

	// Metal prices cache
	priceSvc := prices.NewService(cfg.Prices, logger)
	if err := priceSvc.Start(ctx); err != nil {
		log.Fatalf("starting price refresh: %v", err)
	}
	defer priceSvc.Stop()

	// Webhook verification
	verifier := paypal.NewVerifier(cfg.PayPal, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(cfg, pipeline, mailer, priceSvc, verifier, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("http serving on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
}
