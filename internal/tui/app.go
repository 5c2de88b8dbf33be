// Package tui provides the interactive Bubble Tea dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ccwidget/internal/adminapi"
	"github.com/theirongolddev/ccwidget/internal/cli"
	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
)

// refreshInterval is how often the dashboard recomputes on its own.
const refreshInterval = 30 * time.Second

// dataLoadedMsg is sent when a stats computation finishes.
type dataLoadedMsg struct {
	stats model.UsageStats
	err   error
}

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	period pipeline.Period

	stats   model.UsageStats
	loaded  bool
	loadErr error

	loading bool
	spinner spinner.Model

	width  int
	height int
}

// NewApp builds the dashboard model.
func NewApp(cfg config.Config, period pipeline.Period) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return App{
		cfg:     cfg,
		period:  period,
		spinner: sp,
		loading: true,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd(), tickCmd())
}

// loadCmd computes fresh stats off the UI loop, preferring the Admin
// API when a key is configured.
func (a App) loadCmd() tea.Cmd {
	cfg := a.cfg
	period := a.period
	return func() tea.Msg {
		if client := adminapi.NewClient(config.GetAdminAPIKey(cfg), cfg.AdminAPI.BaseURL); client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
			defer cancel()
			if stats, err := adminapi.BuildUsageStats(ctx, client, cfg); err == nil {
				return dataLoadedMsg{stats: stats}
			}
		}
		stats, err := pipeline.GetCurrentUsage(cfg, period)
		return dataLoadedMsg{stats: stats, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.loadCmd())
		case "t":
			return a.switchPeriod(pipeline.PeriodToday)
		case "w":
			return a.switchPeriod(pipeline.PeriodWeek)
		case "m":
			return a.switchPeriod(pipeline.PeriodMonth)
		case "a":
			return a.switchPeriod(pipeline.PeriodAll)
		}
		return a, nil

	case dataLoadedMsg:
		a.loading = false
		a.loadErr = msg.err
		if msg.err == nil {
			a.stats = msg.stats
			a.loaded = true
		}
		return a, nil

	case tickMsg:
		if a.loading {
			return a, tickCmd()
		}
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.loadCmd(), tickCmd())

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) switchPeriod(p pipeline.Period) (tea.Model, tea.Cmd) {
	if a.period == p {
		return a, nil
	}
	a.period = p
	a.loading = true
	return a, tea.Batch(a.spinner.Tick, a.loadCmd())
}

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText)
	labelStyle    = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	statusStyle   = lipgloss.NewStyle().Foreground(cli.ColorTextDim)
	errStyle      = lipgloss.NewStyle().Foreground(cli.ColorRed)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.ColorBorder).
			Padding(0, 1)
)

func (a App) View() string {
	var b strings.Builder

	header := appTitleStyle.Render("ccwidget") + labelStyle.Render("  "+string(a.period))
	if a.loading {
		header += "  " + a.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case a.loadErr != nil && !a.loaded:
		b.WriteString(errStyle.Render(fmt.Sprintf("  %v", a.loadErr)))
		b.WriteString("\n")
	case !a.loaded:
		b.WriteString(labelStyle.Render("  Loading usage data..."))
		b.WriteString("\n")
	default:
		b.WriteString(a.renderDashboard())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render("  t/w/m/a period · r refresh · q quit"))
	return b.String()
}

func (a App) renderDashboard() string {
	s := a.stats

	var b strings.Builder

	totals := fmt.Sprintf("%s msgs   %s tokens   %s",
		cli.FormatNumber(int64(s.MessageCount)),
		cli.FormatTokens(s.TotalTokens.Total()),
		cli.FormatCost(s.TotalCostUSD),
	)
	quota := fmt.Sprintf("5h  %s\nweek %s",
		cli.RenderQuotaBar(s.Quota.UsagePercent, 24),
		cli.RenderQuotaBar(s.Quota.WeekUsagePercent, 24),
	)
	b.WriteString(panelStyle.Render(totals + "\n" + quota))
	b.WriteString("\n\n")

	if len(s.ByModel) > 0 {
		rows := make([][]string, 0, len(s.ByModel))
		for _, m := range s.ByModel {
			rows = append(rows, []string{
				m.DisplayName,
				cli.FormatTokens(m.Tokens.InputTokens),
				cli.FormatTokens(m.Tokens.OutputTokens),
				cli.FormatCost(m.CostUSD),
			})
		}
		b.WriteString(cli.RenderTable(cli.Table{
			Title:   "Models",
			Headers: []string{"Model", "In", "Out", "Cost"},
			Rows:    rows,
		}))
		b.WriteString("\n")
	}

	if len(s.ActiveSessions) > 0 {
		now := time.Now()
		rows := make([][]string, 0, len(s.ActiveSessions))
		for i, sess := range s.ActiveSessions {
			if i >= 8 {
				break
			}
			rows = append(rows, []string{
				sess.Project,
				sess.ModelDisplayName,
				cli.FormatRelativeTime(sess.LastActivity, now),
				cli.FormatTokens(sess.TotalTokens),
				cli.FormatPercent(sess.ContextRemainingPercent),
			})
		}
		b.WriteString(cli.RenderTable(cli.Table{
			Title:   "Active Sessions (24h)",
			Headers: []string{"Project", "Model", "Last", "Tokens", "Ctx Left"},
			Rows:    rows,
		}))
		b.WriteString("\n")
	}

	if len(s.DailyActivity) > 0 {
		b.WriteString("  " + labelStyle.Render("Activity") + "\n")
		b.WriteString(cli.RenderHeatmap(s.DailyActivity))
	}

	return b.String()
}
