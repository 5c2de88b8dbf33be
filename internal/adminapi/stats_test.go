package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/theirongolddev/ccwidget/internal/config"
)

func TestBuildUsageStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "usage_report") {
			_, _ = w.Write([]byte(`{
				"data": [{
					"starting_at": "2025-06-01T00:00:00Z",
					"ending_at": "2025-06-02T00:00:00Z",
					"results": [
						{"model": "claude-sonnet-4-20250514", "uncached_input_tokens": 1000, "output_tokens": 500, "cache_read_input_tokens": 100},
						{"model": "claude-opus-4-5", "uncached_input_tokens": 9000, "output_tokens": 4000, "cache_read_input_tokens": 0},
						{"model": "", "uncached_input_tokens": 7, "output_tokens": 3, "cache_read_input_tokens": 0}
					]
				}],
				"has_more": false
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"data": [{
				"starting_at": "2025-06-01T00:00:00Z",
				"ending_at": "2025-06-02T00:00:00Z",
				"results": [
					{"amount": "250.00", "currency": "USD", "model": "claude-sonnet-4-20250514", "cost_type": "tokens"},
					{"amount": "1000.00", "currency": "USD", "model": "claude-opus-4-5", "cost_type": "tokens"},
					{"amount": "50.00", "currency": "USD", "model": "", "cost_type": "tokens"}
				]
			}],
			"has_more": false
		}`))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.General.DataDirs = []string{t.TempDir()} // no local logs

	client := NewClient("sk-ant-admin-test", srv.URL)
	stats, err := BuildUsageStats(context.Background(), client, cfg)
	if err != nil {
		t.Fatalf("BuildUsageStats: %v", err)
	}

	if len(stats.ByModel) != 3 {
		t.Fatalf("len(ByModel) = %d, want 3 (including unknown bucket)", len(stats.ByModel))
	}

	// Sorted by input+output descending: opus first.
	if stats.ByModel[0].DisplayName != "Opus 4.5" {
		t.Errorf("ByModel[0] = %q, want Opus 4.5 first", stats.ByModel[0].DisplayName)
	}
	if stats.ByModel[0].CostUSD != 10.0 {
		t.Errorf("opus cost = %v, want 10.00 (cents to dollars)", stats.ByModel[0].CostUSD)
	}
	if stats.ByModel[1].CostUSD != 2.5 {
		t.Errorf("sonnet cost = %v, want 2.50", stats.ByModel[1].CostUSD)
	}
	// Blank model id buckets land under "unknown"; blank cost rows drop.
	if stats.ByModel[2].Model != "unknown" {
		t.Errorf("ByModel[2].Model = %q, want unknown", stats.ByModel[2].Model)
	}
	if stats.ByModel[2].CostUSD != 0 {
		t.Errorf("unknown cost = %v, want 0", stats.ByModel[2].CostUSD)
	}

	wantTotal := uint64(1000 + 500 + 100 + 9000 + 4000 + 7 + 3)
	if stats.TotalTokens.Total() != wantTotal {
		t.Errorf("TotalTokens.Total() = %d, want %d", stats.TotalTokens.Total(), wantTotal)
	}
	if stats.TotalCostUSD != 12.5 {
		t.Errorf("TotalCostUSD = %v, want 12.5", stats.TotalCostUSD)
	}

	// No local logs: supplemental parts are empty but present.
	if stats.MessageCount != 0 || len(stats.ActiveSessions) != 0 {
		t.Errorf("supplemental = %d msgs, %d sessions, want 0/0",
			stats.MessageCount, len(stats.ActiveSessions))
	}
	if stats.Quota.EstimatedLimit != 500 {
		t.Errorf("Quota.EstimatedLimit = %d, want remote limit 500", stats.Quota.EstimatedLimit)
	}
}

func TestBuildUsageStats_UsageFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.General.DataDirs = []string{t.TempDir()}

	client := NewClient("sk-ant-admin-test", srv.URL)
	if _, err := BuildUsageStats(context.Background(), client, cfg); err == nil {
		t.Fatal("expected error when usage fetch fails")
	}
}
