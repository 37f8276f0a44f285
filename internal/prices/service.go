// Package prices caches gold and silver per-gram prices fetched from a
// third-party metals API.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

// Pair is a gold/silver price snapshot, EUR per gram.
type Pair struct {
	GoldPricePerGram   float64 `json:"goldPricePerGram"`
	SilverPricePerGram float64 `json:"silverPricePerGram"`
}

type apiResponse struct {
	Data struct {
		MetalPrices struct {
			XAU struct {
				Price float64 `json:"price"`
			} `json:"XAU"`
			XAG struct {
				Price float64 `json:"price"`
			} `json:"XAG"`
		} `json:"metal_prices"`
	} `json:"data"`
}

// Service fetches and caches metal prices. The cache refreshes on a cron
// schedule and lazily when still empty.
type Service struct {
	cfg    common.PricesConfig
	client *http.Client
	cron   *cron.Cron
	logger *zap.Logger

	mu      sync.RWMutex
	current *Pair
}

// NewService creates a price service; call Start to begin refreshing.
func NewService(cfg common.PricesConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cron:   cron.New(),
		logger: logger,
	}
}

// Start fetches once eagerly and schedules periodic refreshes. A failed
// initial fetch is logged, not fatal; the cache fills on a later attempt.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial price fetch failed", zap.Error(err))
	}

	_, err := s.cron.AddFunc(s.cfg.RefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
		defer cancel()
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("scheduled price refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling price refresh %q: %w", s.cfg.RefreshCron, err)
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduled refreshes.
func (s *Service) Stop() {
	s.cron.Stop()
}

// Refresh fetches the latest prices and replaces the cached pair.
func (s *Service) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.APIURL, nil)
	if err != nil {
		return fmt.Errorf("building price request: %w", err)
	}
	req.Header.Set("x-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("price api status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding price response: %w", err)
	}

	gold := body.Data.MetalPrices.XAU.Price
	silver := body.Data.MetalPrices.XAG.Price
	if gold == 0 || silver == 0 {
		return fmt.Errorf("missing metal prices in api response")
	}

	s.mu.Lock()
	s.current = &Pair{GoldPricePerGram: gold, SilverPricePerGram: silver}
	s.mu.Unlock()

	s.logger.Info("metal prices updated",
		zap.Float64("gold_eur_per_gram", gold),
		zap.Float64("silver_eur_per_gram", silver),
		zap.Time("at", time.Now()),
	)
	return nil
}

// Current returns the cached pair, fetching on demand when the cache is
// still empty.
func (s *Service) Current(ctx context.Context) (Pair, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return *cur, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return Pair{}, common.NewAppError("PRICES_UNAVAILABLE", "prices not available yet", common.ErrUnavailable)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current, nil
}
