package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// style paints the entries of a diff by kind of change.
type style struct {
	added    func(format string, a ...any) string
	removed  func(format string, a ...any) string
	modified func(format string, a ...any) string
	renamed  func(format string, a ...any) string
}

var plainStyle = style{
	added:    fmt.Sprintf,
	removed:  fmt.Sprintf,
	modified: fmt.Sprintf,
	renamed:  fmt.Sprintf,
}

// colorStyle follows the usual migration output colors. color.NoColor
// turns it into plain output.
func colorStyle() style {
	return style{
		added:    color.New(color.FgGreen).SprintfFunc(),
		removed:  color.New(color.FgRed).SprintfFunc(),
		modified: color.New(color.FgYellow).SprintfFunc(),
		renamed:  color.New(color.FgCyan).SprintfFunc(),
	}
}

type writer struct {
	strings.Builder
}

func (w *writer) line(depth int, s string) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *writer) linef(depth int, format string, a ...any) {
	w.line(depth, fmt.Sprintf(format, a...))
}

func section(w *writer, depth int, title string, names []string, paint func(string, ...any) string) {
	if len(names) == 0 {
		return
	}
	w.line(depth, title+":")
	for _, n := range names {
		w.line(depth+1, paint("- %s", n))
	}
}

// Describe writes the diff to w as a colored tree: added entries in green,
// removed in red, modified in yellow and renamed in cyan.
func (d *DatabaseDiff) Describe(w io.Writer) error {
	var b writer
	d.render(&b, colorStyle())
	_, err := io.WriteString(w, b.String())
	return err
}

// Describe writes the diff to w as a colored tree.
func (d *TableDiff) Describe(w io.Writer) error {
	var b writer
	d.render(&b, 0, colorStyle())
	_, err := io.WriteString(w, b.String())
	return err
}
