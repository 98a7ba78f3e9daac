// Package output renders scoring results for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Printer writes styled reports to a writer. Colour is dropped automatically
// when the writer is not a terminal.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

// New creates a Printer for w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, r: lipgloss.NewRenderer(w)}
}

// Colour tags used by the scoring packages.
var tagColours = map[string]lipgloss.Color{
	"good":     lipgloss.Color("10"), // green
	"average":  lipgloss.Color("3"),  // yellow
	"poor":     lipgloss.Color("9"),  // red
	"crushing": lipgloss.Color("10"),
	"above":    lipgloss.Color("2"),
	"on_par":   lipgloss.Color("3"),
	"below":    lipgloss.Color("208"),
	"lagging":  lipgloss.Color("9"),
}

// labelTags maps diagnostic labels onto colour tags.
var labelTags = map[string]string{
	"Excellent":     "good",
	"Good":          "good",
	"Strong":        "good",
	"Average":       "average",
	"Moderate":      "average",
	"Below Average": "poor",
	"Poor":          "poor",
	"Low":           "poor",
	"Weak":          "poor",
	"No Caption":    "poor",
}

// TagFor returns the colour tag of a diagnostic label, or "" when unknown.
func TagFor(label string) string {
	return labelTags[label]
}

func (p *Printer) tagged(tag, text string) string {
	c, ok := tagColours[tag]
	if !ok {
		return text
	}
	return p.r.NewStyle().Foreground(c).Bold(true).Render(text)
}

func (p *Printer) heading(text string) {
	fmt.Fprintln(p.w, p.r.NewStyle().Bold(true).Underline(true).Render(text))
}

func (p *Printer) faint(text string) string {
	return p.r.NewStyle().Foreground(lipgloss.Color("7")).Render(text)
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) blank() {
	fmt.Fprintln(p.w)
}

// Text prints a titled block of generated text. Failed generations are shown
// in the poor colour.
func (p *Printer) Text(title, body string) {
	p.heading(title)
	if strings.HasPrefix(body, "API ERROR: ") {
		p.line("%s", p.tagged("poor", body))
		return
	}
	p.line("%s", strings.TrimSpace(body))
}

func pct(fraction float64, places int) string {
	return fmt.Sprintf("%.*f%%", places, fraction*100)
}

func comma(v float64) string {
	return humanize.Comma(int64(v + 0.5))
}

func signed(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}
