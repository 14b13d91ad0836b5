package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colours borrowed from the TfL bus livery and the amber LEDs of a
// countdown sign.
var (
	colorBusRed  = lipgloss.Color("160")
	colorRoundel = lipgloss.Color("27")
	colorAmber   = lipgloss.Color("214")
	colorWhite   = lipgloss.Color("255")
	colorGray    = lipgloss.Color("245")
	colorDim     = lipgloss.Color("240")
)

var (
	// StyleTitle is used for the watch title bar and table headers.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)

	// StyleDim is used for borders, help and timestamps.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue is used for configured values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var styleIconSpinner = lipgloss.NewStyle().Foreground(colorAmber)

const (
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconRoute   = "→"
)

// status writes human-facing status lines to w, normally stderr, so that
// stdout carries nothing but boards. Colours follow w rather than stdout.
type status struct {
	w io.Writer
	r *lipgloss.Renderer
}

func newStatus(w io.Writer) *status {
	return &status{w: w, r: lipgloss.NewRenderer(w)}
}

func (s *status) fg(c lipgloss.TerminalColor) lipgloss.Style {
	return s.r.NewStyle().Foreground(c)
}

func (s *status) errorf(format string, args ...any) {
	fmt.Fprintln(s.w, s.fg(colorBusRed).Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (s *status) warnf(format string, args ...any) {
	amber := s.fg(colorAmber)
	fmt.Fprintln(s.w, amber.Render(iconWarning)+" "+amber.Render(fmt.Sprintf(format, args...)))
}

func (s *status) infof(format string, args ...any) {
	fmt.Fprintln(s.w, s.fg(colorGray).Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// detailf prints an indented, dimmed line under the previous one.
func (s *status) detailf(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+s.fg(colorDim).Render(fmt.Sprintf(format, args...)))
}

func (s *status) keyValue(key, value string) {
	fmt.Fprintln(s.w, s.fg(colorGray).Width(12).Render(key)+" "+s.fg(colorWhite).Render(value))
}

// endpoint lists one route served by "busstop serve".
func (s *status) endpoint(url, desc string) {
	fmt.Fprintf(s.w, "  %s %-40s %s\n", s.fg(colorRoundel).Render(iconRoute), url, s.fg(colorDim).Render(desc))
}
