package config

import (
	"strings"

	"github.com/theirongolddev/ccwidget/internal/model"
)

// ModelPricing holds per-million-token prices for a pricing tier.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// Pricing tiers matched by model-name substring, in priority order.
// Static constants as of 2025; updated manually when prices change.
var pricingTiers = []struct {
	substr  string
	pricing ModelPricing
}{
	{"opus", ModelPricing{InputPerMTok: 15.0, OutputPerMTok: 75.0, CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50}},
	{"sonnet", ModelPricing{InputPerMTok: 3.0, OutputPerMTok: 15.0, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30}},
	{"haiku", ModelPricing{InputPerMTok: 0.25, OutputPerMTok: 1.25, CacheWritePerMTok: 0.30, CacheReadPerMTok: 0.03}},
}

// LookupPricing returns the pricing tier for a model identifier.
// Unrecognized models fall back to the sonnet tier.
func LookupPricing(modelName string) ModelPricing {
	for _, tier := range pricingTiers {
		if strings.Contains(modelName, tier.substr) {
			return tier.pricing
		}
	}
	return pricingTiers[1].pricing // sonnet tier
}

// CalculateCost computes the estimated cost in USD for a token usage block.
func CalculateCost(modelName string, tokens model.TokenUsage) float64 {
	p := LookupPricing(modelName)
	const million = 1_000_000.0

	return float64(tokens.InputTokens)/million*p.InputPerMTok +
		float64(tokens.OutputTokens)/million*p.OutputPerMTok +
		float64(tokens.CacheCreationInputTokens)/million*p.CacheWritePerMTok +
		float64(tokens.CacheReadInputTokens)/million*p.CacheReadPerMTok
}

// Display-name patterns matched against the model identifier, in priority
// order. Identifiers look like "claude-opus-4-5-20251101".
var displayNames = []struct {
	substrs []string
	name    string
}{
	{[]string{"opus-4-5", "opus-4.5"}, "Opus 4.5"},
	{[]string{"opus-4"}, "Opus 4"},
	{[]string{"opus"}, "Opus"},
	{[]string{"sonnet-4"}, "Sonnet 4"},
	{[]string{"sonnet-3-5", "sonnet-3.5"}, "Sonnet 3.5"},
	{[]string{"sonnet"}, "Sonnet"},
	{[]string{"haiku-3-5", "haiku-3.5"}, "Haiku 3.5"},
	{[]string{"haiku"}, "Haiku"},
}

// ModelDisplayName derives a human-readable name from a model identifier,
// falling back to the raw identifier.
func ModelDisplayName(modelName string) string {
	for _, d := range displayNames {
		for _, s := range d.substrs {
			if strings.Contains(modelName, s) {
				return d.name
			}
		}
	}
	return modelName
}

// ContextLimit returns the context window size in tokens for a model.
// All current Claude models expose a 200K window; no per-model variation
// is modeled yet.
func ContextLimit(_ string) uint64 {
	return 200_000
}

// ContextRemainingPercent computes remaining context headroom for the
// given live context size, clamped at 0.
func ContextRemainingPercent(contextTokens uint64, modelName string) float64 {
	used := float64(contextTokens) / float64(ContextLimit(modelName)) * 100.0
	remaining := 100.0 - used
	if remaining < 0 {
		return 0
	}
	return remaining
}
