// Package render writes temperatures for people to read. Output is plain
// text unless it goes to a terminal, in which case it is styled.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lone-faerie/tempconv/temperature"
)

// Printer writes temperature lines to an [io.Writer].
type Printer struct {
	w      io.Writer
	styled bool

	value  lipgloss.Style
	symbol lipgloss.Style
	marker lipgloss.Style
	prompt lipgloss.Style
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// New returns a Printer writing to w. Styles are applied only when w is a
// terminal.
func New(w io.Writer) *Printer {
	f, _ := w.(*os.File)
	return newPrinter(w, IsTerminal(f))
}

func newPrinter(w io.Writer, styled bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		styled: styled,
		value:  r.NewStyle().Bold(true),
		symbol: r.NewStyle().Foreground(lipgloss.Color("6")),
		marker: r.NewStyle().Faint(true),
		prompt: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *Printer) temperature(t temperature.Temperature) string {
	return p.style(p.value, temperature.FormatValue(t.Value)) + " " + p.style(p.symbol, t.Unit.Symbol())
}

// Prompt writes the input prompt, showing the default literal.
func (p *Printer) Prompt(def string) error {
	_, err := fmt.Fprintf(p.w, "%s [%s]:\n", p.style(p.prompt, "Temperature"), def)
	return err
}

// Input writes the parsed input temperature.
func (p *Printer) Input(t temperature.Temperature) error {
	_, err := fmt.Fprintln(p.w, p.temperature(t))
	return err
}

// Results writes one "= {value} {symbol}" line per temperature.
func (p *Printer) Results(tt []temperature.Temperature) error {
	for _, t := range tt {
		if _, err := fmt.Fprintln(p.w, p.style(p.marker, "="), p.temperature(t)); err != nil {
			return err
		}
	}
	return nil
}

// Units writes a table of units with their symbols, patterns and names.
func (p *Printer) Units(units []temperature.Unit) error {
	title := cases.Title(language.English)
	for _, u := range units {
		sym := fmt.Sprintf("%-3s", u.Symbol())
		_, err := fmt.Fprintf(p.w, "%s\t%-10s\t%s\n", p.style(p.symbol, sym), title.String(u.Name()), u.Pattern())
		if err != nil {
			return err
		}
	}
	return nil
}
