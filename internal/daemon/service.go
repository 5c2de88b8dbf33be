// Package daemon provides the long-running status service: it keeps a
// cached usage snapshot fresh as log files change and serves it over a
// local HTTP API for external status consumers.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	App      config.Config
	Addr     string
	Interval time.Duration
}

// Summary is the compact status payload served at /v1/summary.
type Summary struct {
	WeekUsagePercent float64 `json:"week_usage_percent"`
	DaysUntilReset   int     `json:"days_until_reset"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastRefreshAt   time.Time `json:"last_refresh_at"`
	RefreshCount    int64     `json:"refresh_count"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	LastError       string    `json:"last_error,omitempty"`
	Summary         Summary   `json:"summary"`
}

// Service owns the cached snapshot and the HTTP API.
type Service struct {
	cfg Config

	mu            sync.RWMutex
	startedAt     time.Time
	lastRefreshAt time.Time
	refreshCount  int64
	lastError     string
	hasStats      bool
	stats         model.UsageStats

	// File change bursts during an active session arrive every few
	// seconds; the limiter caps full recomputes regardless of how noisy
	// the watcher gets.
	limiter *rate.Limiter
}

// New returns a daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 5*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.Addr == "" {
		cfg.Addr = cfg.App.Daemon.Addr
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8799"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Run serves the HTTP API and keeps the snapshot fresh until ctx is
// canceled. Refreshes are triggered by file watcher events (debounced)
// with a poll ticker as fallback.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/summary", s.handleSummary)
	mux.HandleFunc("/v1/usage", s.handleUsage)
	mux.HandleFunc("/v1/status", s.handleStatus)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	changes := make(chan struct{}, 1)
	go watchDataDirs(ctx, pipeline.DataDirs(s.cfg.App), changes)

	// Seed the snapshot so the summary endpoint is useful immediately.
	s.refresh()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-changes:
			s.refresh()
		case <-ticker.C:
			s.refresh()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// refresh recomputes the snapshot from raw logs, rate limited.
func (s *Service) refresh() {
	if !s.limiter.Allow() {
		return
	}

	stats, err := pipeline.GetCurrentUsage(s.cfg.App, pipeline.PeriodWeek)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRefreshAt = time.Now()
	s.refreshCount++
	if err != nil {
		s.lastError = err.Error()
		log.Printf("ccwidget daemon refresh error: %v", err)
		return
	}
	s.lastError = ""
	s.stats = stats
	s.hasStats = true
}

func (s *Service) summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{DaysUntilReset: pipeline.DaysUntilWeeklyReset(time.Now())}
	if s.hasStats {
		sum.WeekUsagePercent = s.stats.Quota.WeekUsagePercent
	}
	return sum
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleSummary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.summary())
}

func (s *Service) handleUsage(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	stats := s.stats
	ok := s.hasStats
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no data", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	st := Status{
		StartedAt:       s.startedAt,
		LastRefreshAt:   s.lastRefreshAt,
		RefreshCount:    s.refreshCount,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		LastError:       s.lastError,
	}
	s.mu.RUnlock()
	st.Summary = s.summary()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}
