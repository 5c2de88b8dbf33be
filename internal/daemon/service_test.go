package daemon

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.DataDirs = []string{t.TempDir()}
	return New(Config{App: cfg, Addr: "127.0.0.1:0", Interval: time.Minute})
}

func TestHandleHealth(t *testing.T) {
	svc := newTestService(t)

	rec := httptest.NewRecorder()
	svc.handleHealth(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != 200 {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Body.String() != "ok\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandleSummary_NoData(t *testing.T) {
	svc := newTestService(t)

	rec := httptest.NewRecorder()
	svc.handleSummary(rec, httptest.NewRequest("GET", "/v1/summary", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	var sum Summary
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.WeekUsagePercent != 0 {
		t.Errorf("WeekUsagePercent = %v, want 0 before first refresh", sum.WeekUsagePercent)
	}
	if sum.DaysUntilReset < 1 || sum.DaysUntilReset > 7 {
		t.Errorf("DaysUntilReset = %d, want 1..7", sum.DaysUntilReset)
	}
}

func TestHandleSummary_WithStats(t *testing.T) {
	svc := newTestService(t)
	svc.mu.Lock()
	svc.stats = model.UsageStats{Quota: model.QuotaInfo{WeekUsagePercent: 37.5}}
	svc.hasStats = true
	svc.mu.Unlock()

	rec := httptest.NewRecorder()
	svc.handleSummary(rec, httptest.NewRequest("GET", "/v1/summary", nil))

	var sum Summary
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.WeekUsagePercent != 37.5 {
		t.Errorf("WeekUsagePercent = %v, want 37.5", sum.WeekUsagePercent)
	}
}

func TestHandleUsage_NoData(t *testing.T) {
	svc := newTestService(t)

	rec := httptest.NewRecorder()
	svc.handleUsage(rec, httptest.NewRequest("GET", "/v1/usage", nil))

	if rec.Code != 503 {
		t.Errorf("status = %d, want 503 before first refresh", rec.Code)
	}
}

func TestHandleUsage_WithStats(t *testing.T) {
	svc := newTestService(t)
	svc.mu.Lock()
	svc.stats = model.UsageStats{MessageCount: 12}
	svc.hasStats = true
	svc.mu.Unlock()

	rec := httptest.NewRecorder()
	svc.handleUsage(rec, httptest.NewRequest("GET", "/v1/usage", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats model.UsageStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.MessageCount != 12 {
		t.Errorf("MessageCount = %d, want 12", stats.MessageCount)
	}
}

func TestRefresh_RateLimited(t *testing.T) {
	svc := newTestService(t)

	svc.refresh()
	first := func() int64 {
		svc.mu.RLock()
		defer svc.mu.RUnlock()
		return svc.refreshCount
	}()
	if first != 1 {
		t.Fatalf("refreshCount = %d, want 1", first)
	}

	// Immediate second refresh is dropped by the limiter.
	svc.refresh()
	svc.mu.RLock()
	second := svc.refreshCount
	svc.mu.RUnlock()
	if second != 1 {
		t.Errorf("refreshCount = %d, want 1 (rate limited)", second)
	}
}

func TestHandleStatus(t *testing.T) {
	svc := newTestService(t)
	svc.refresh()

	rec := httptest.NewRecorder()
	svc.handleStatus(rec, httptest.NewRequest("GET", "/v1/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var st Status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.RefreshCount != 1 {
		t.Errorf("RefreshCount = %d, want 1", st.RefreshCount)
	}
	if st.PollIntervalSec != 60 {
		t.Errorf("PollIntervalSec = %d, want 60", st.PollIntervalSec)
	}
}
