package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/ccwidget/internal/model"
)

func TestRenderTable_Basic(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Messages", "42"},
			{"---"},
			{"Cost", "$1.23"},
		},
	})

	for _, want := range []string{"Metric", "Messages", "42", "$1.23"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table = %q, want empty string", got)
	}
}

func TestRenderQuotaBar(t *testing.T) {
	out := RenderQuotaBar(50, 10)
	if !strings.Contains(out, "50.0%") {
		t.Errorf("quota bar missing percentage: %q", out)
	}

	// Out-of-range input clamps instead of panicking.
	if out := RenderQuotaBar(150, 10); !strings.Contains(out, "100.0%") {
		t.Errorf("over-limit bar = %q", out)
	}
	if out := RenderQuotaBar(-5, 10); !strings.Contains(out, "0.0%") {
		t.Errorf("negative bar = %q", out)
	}
}

func TestRenderHeatmap(t *testing.T) {
	daily := []model.DailyActivity{
		{Date: "2025-06-01", PromptCount: 3},
		{Date: "2025-06-03", PromptCount: 10},
	}

	out := RenderHeatmap(daily)
	if !strings.Contains(out, "2025-06-01") {
		t.Errorf("heatmap missing start date: %q", out)
	}
	// Three days span: two active plus the gap day.
	if strings.Count(out, "·") != 1 {
		t.Errorf("heatmap gap days = %d, want 1", strings.Count(out, "·"))
	}
}

func TestRenderHeatmap_Empty(t *testing.T) {
	out := RenderHeatmap(nil)
	if !strings.Contains(out, "no activity") {
		t.Errorf("empty heatmap = %q", out)
	}
}

func TestHeatmapCell_Bounds(t *testing.T) {
	if HeatmapCell(0, 10) == "" {
		t.Error("zero cell empty")
	}
	if HeatmapCell(10, 10) == "" {
		t.Error("max cell empty")
	}
	// Zero max must not divide by zero.
	if HeatmapCell(5, 0) == "" {
		t.Error("zero-max cell empty")
	}
}
