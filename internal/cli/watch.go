package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/busstop/pkg/arrivals"
	"github.com/matzehuels/busstop/pkg/render"
)

// defaultWatchInterval is the refresh period of the live board.
const defaultWatchInterval = 30 * time.Second

// minWatchInterval keeps the board from hammering the API.
const minWatchInterval = 5 * time.Second

func (c *CLI) watchCommand(board *boardFlags) *cobra.Command {
	var (
		filter   filterFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live board that refreshes periodically",
		Long: `Show the text board full-screen and refresh it on an interval.

Keys: r refreshes now, q or ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval < minWatchInterval {
				return fmt.Errorf("interval must be at least %s", minWatchInterval)
			}
			runner, _, err := c.newRunner(*board)
			if err != nil {
				return err
			}

			// Log lines would tear the full-screen view.
			c.Logger.SetOutput(io.Discard)
			defer c.Logger.SetOutput(os.Stderr)

			ctx := cmd.Context()
			f := filter.filter()
			model := newWatchModel(ctx, func(ctx context.Context) []arrivals.StopResult {
				return f.Apply(runner.RunAll(ctx))
			}, interval)

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			return nil
		},
	}

	filter.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "refresh interval")
	return cmd
}

// =============================================================================
// watchModel - live board
// =============================================================================

type boardMsg struct {
	results []arrivals.StopResult
	at      time.Time
}

type tickMsg struct {
	gen int
}

type watchModel struct {
	ctx      context.Context
	fetch    func(context.Context) []arrivals.StopResult
	interval time.Duration

	results []arrivals.StopResult
	updated time.Time
	loading bool
	// gen invalidates ticks scheduled before a manual refresh.
	gen int
}

func newWatchModel(ctx context.Context, fetch func(context.Context) []arrivals.StopResult, interval time.Duration) watchModel {
	return watchModel{ctx: ctx, fetch: fetch, interval: interval, loading: true}
}

func (m watchModel) Init() tea.Cmd {
	return m.refresh()
}

func (m watchModel) refresh() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		return boardMsg{results: fetch(ctx), at: time.Now()}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.gen++
				return m, m.refresh()
			}
		}
	case boardMsg:
		m.results = msg.results
		m.updated = msg.at
		m.loading = false
		m.gen++
		gen := m.gen
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
	case tickMsg:
		if msg.gen == m.gen && !m.loading {
			m.loading = true
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	status := "loading..."
	if !m.updated.IsZero() {
		status = fmt.Sprintf("updated %s · every %s", m.updated.In(arrivals.London).Format(arrivals.TimeFormat), m.interval)
		if m.loading {
			status += " · refreshing"
		}
	}
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n\n")

	_ = render.TextWithRenderer(&b, lipgloss.DefaultRenderer(), m.results)

	b.WriteString(StyleDim.Render("r refresh  q quit"))
	b.WriteString("\n")
	return b.String()
}
