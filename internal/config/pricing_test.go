package config

import (
	"math"
	"testing"

	"github.com/theirongolddev/ccwidget/internal/model"
)

func TestLookupPricing(t *testing.T) {
	tests := []struct {
		model     string
		wantInput float64
	}{
		{"claude-opus-4-5-20251101", 15.0},
		{"claude-sonnet-4-20250514", 3.0},
		{"claude-haiku-3-5-20241022", 0.25},
		{"some-future-model", 3.0}, // sonnet fallback
		{"", 3.0},
	}

	for _, tt := range tests {
		p := LookupPricing(tt.model)
		if p.InputPerMTok != tt.wantInput {
			t.Errorf("LookupPricing(%q).InputPerMTok = %v, want %v", tt.model, p.InputPerMTok, tt.wantInput)
		}
	}
}

func TestLookupPricing_OpusBeforeSonnet(t *testing.T) {
	// A name containing both substrings resolves to the higher tier.
	p := LookupPricing("opus-sonnet-hybrid")
	if p.InputPerMTok != 15.0 {
		t.Errorf("InputPerMTok = %v, want opus tier 15.0", p.InputPerMTok)
	}
}

func TestCalculateCost(t *testing.T) {
	tokens := model.TokenUsage{
		InputTokens:              1_000_000,
		OutputTokens:             1_000_000,
		CacheCreationInputTokens: 1_000_000,
		CacheReadInputTokens:     1_000_000,
	}

	got := CalculateCost("claude-opus-4-5", tokens)
	want := 15.0 + 75.0 + 18.75 + 1.50
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CalculateCost = %v, want %v", got, want)
	}
}

func TestCalculateCost_Zero(t *testing.T) {
	if got := CalculateCost("claude-sonnet-4", model.TokenUsage{}); got != 0 {
		t.Errorf("CalculateCost(zero) = %v, want 0", got)
	}
}

func TestModelDisplayName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"claude-opus-4-5-20251101", "Opus 4.5"},
		{"claude-opus-4.5", "Opus 4.5"},
		{"claude-opus-4-20250514", "Opus 4"},
		{"claude-opus-3", "Opus"},
		{"claude-sonnet-4-20250514", "Sonnet 4"},
		{"claude-3-5-sonnet-20241022", "Sonnet"},
		{"claude-sonnet-3-5", "Sonnet 3.5"},
		{"claude-haiku-3-5-20241022", "Haiku 3.5"},
		{"claude-haiku-4", "Haiku"},
		{"mystery-model", "mystery-model"},
	}

	for _, tt := range tests {
		if got := ModelDisplayName(tt.model); got != tt.want {
			t.Errorf("ModelDisplayName(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestContextRemainingPercent(t *testing.T) {
	tests := []struct {
		tokens uint64
		want   float64
	}{
		{0, 100},
		{100_000, 50},
		{200_000, 0},
		{500_000, 0}, // clamped
	}

	for _, tt := range tests {
		got := ContextRemainingPercent(tt.tokens, "claude-sonnet-4")
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ContextRemainingPercent(%d) = %v, want %v", tt.tokens, got, tt.want)
		}
	}
}
