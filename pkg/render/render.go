package render

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/busstop/pkg/arrivals"
	"github.com/matzehuels/busstop/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatJSON

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be %s or %s)", format, FormatJSON, FormatText)
}

// Write renders results to w in the given format.
func Write(w io.Writer, format string, results []arrivals.StopResult) error {
	switch format {
	case FormatJSON, "":
		return JSON(w, results)
	case FormatText:
		return Text(w, results)
	}
	return ValidateFormat(format)
}

// JSON writes results as a JSON array indented by four spaces.
func JSON(w io.Writer, results []arrivals.StopResult) error {
	if results == nil {
		results = []arrivals.StopResult{}
	}
	data, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// headerWidth is the line width the stop name is centred in.
const headerWidth = 76

// Text writes each board as a centred stop name followed by one row per
// arrival:
//
//	num line  destination (50 wide)  arrival  due
//
// Each board is followed by two blank lines. Colors are only emitted when
// w is a terminal.
func Text(w io.Writer, results []arrivals.StopResult) error {
	return TextWithRenderer(w, lipgloss.NewRenderer(w), results)
}

// TextWithRenderer is Text with colors decided by r instead of by w.
func TextWithRenderer(w io.Writer, r *lipgloss.Renderer, results []arrivals.StopResult) error {
	var (
		heading = r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Background(lipgloss.Color("0"))
		row     = r.NewStyle().Foreground(lipgloss.Color("3")).Background(lipgloss.Color("0"))
	)

	var b strings.Builder
	for _, res := range results {
		b.WriteString(heading.Render(Heading(res.StopName)))
		b.WriteByte('\n')
		for _, a := range res.Arrivals {
			if a.IsSentinel() {
				b.WriteString(heading.Render(a.NoInfo))
			} else {
				b.WriteString(row.Render(Row(a)))
			}
			b.WriteByte('\n')
		}
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Heading right-aligns name so that it sits centred in a 76-column line.
func Heading(name string) string {
	width := (headerWidth + lipgloss.Width(name) + 1) / 2
	return padLeft(name, width)
}

// Row formats one arrival as fixed-width columns. Widths are measured in
// terminal cells, so accented and wide destinations keep the columns aligned.
func Row(a arrivals.Arrival) string {
	return strings.Join([]string{
		padRight(strconv.Itoa(a.Number), 3),
		padRight(a.LineName, 5),
		padRight(a.DestinationName, 50),
		padRight(a.ArrivalTime, 9),
		padLeft(a.DueIn, 6),
	}, " ")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
