// Package server exposes the donation backend over HTTP for the browser
// frontends.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/mail"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/paypal"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/prices"
	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/receipt"
)

// Pipeline generates a receipt or thank-you result for one submission.
type Pipeline interface {
	Generate(ctx context.Context, donor receipt.DonorRecord) (*receipt.Result, error)
}

// PriceSource serves the cached metal prices.
type PriceSource interface {
	Current(ctx context.Context) (prices.Pair, error)
}

// WebhookVerifier verifies inbound payment webhooks.
type WebhookVerifier interface {
	Verify(ctx context.Context, h paypal.Headers, body []byte) (bool, error)
	ClientID() string
}

// Server wires the pipeline and its collaborators into HTTP handlers.
type Server struct {
	cfg      common.ServerConfig
	pipeline Pipeline
	mailer   mail.Sender
	prices   PriceSource
	verifier WebhookVerifier
	smtp     common.SMTPConfig
	logger   *zap.Logger
}

// New creates a Server.
func New(cfg *common.Config, pipeline Pipeline, mailer mail.Sender, priceSource PriceSource, verifier WebhookVerifier, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg.Server,
		pipeline: pipeline,
		mailer:   mailer,
		prices:   priceSource,
		verifier: verifier,
		smtp:     cfg.SMTP,
		logger:   logger,
	}
}

// Routes builds the router with the full middleware chain.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(s.cfg.RateLimit, s.cfg.RateWindow))
	r.Use(chimw.RequestSize(s.cfg.MaxBodyBytes))

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Post("/generate-receipt-or-thankyou", s.handleGenerate)
	r.Post("/paypal-webhook", s.handlePayPalWebhook)
	r.Get("/api/metal-prices", s.handleMetalPrices)
	r.Get("/config/paypal", s.handlePayPalConfig)
	r.Post("/subscribe", s.handleSubscribe)
	r.Post("/contact", s.handleContact)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
