// dashboard/model.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

// Loader fetches a fresh summary from the store.
type Loader func(ctx context.Context) (models.DashboardSummary, error)

type summaryMsg struct {
	summary models.DashboardSummary
	err     error
	at      time.Time
}

type tickMsg time.Time

// Model is the live dashboard. It reloads on every tick and on "r".
type Model struct {
	load     Loader
	interval time.Duration

	summary  *models.DashboardSummary
	err      error
	updated  time.Time
	loading  bool
	quitting bool
	width    int
}

func NewModel(load Loader, interval time.Duration) Model {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return Model{load: load, interval: interval, loading: true}
}

func (m Model) fetch() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s, err := load(ctx)
		return summaryMsg{summary: s, err: err, at: time.Now()}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.fetch()
		}

	case tickMsg:
		m.loading = true
		return m, tea.Batch(m.fetch(), m.tick())

	case summaryMsg:
		m.loading = false
		m.updated = msg.at
		m.err = msg.err
		if msg.err == nil {
			s := msg.summary
			m.summary = &s
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	out := titleStyle.Render("Market Intelligence: Competitor Price Tracker")

	var queryErr *database.QueryError
	switch {
	case m.err != nil && errors.As(m.err, &queryErr) && queryErr.Kind == database.QueryEmpty:
		out += "\n" + warningStyle.Render("No price data yet. Run a scrape first.")
	case m.err != nil:
		out += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.summary != nil {
		out += "\n" + RenderSummary(*m.summary)
	} else if m.loading {
		out += "\nLoading..."
	}

	status := fmt.Sprintf("refresh every %v", m.interval)
	if !m.updated.IsZero() {
		status = fmt.Sprintf("last updated %s, %s", m.updated.Format("15:04:05"), status)
	}
	out += "\n" + helpStyle.Render(status+" • r: refresh • q: quit")
	return out
}
