package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/width"
)

// Styles holds the lipgloss styles used in human mode.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

func newStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Error: plain, Success: plain, Warning: plain, Bold: plain, Title: plain, Muted: plain, Key: plain}
	}
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Printer writes command results in JSON or styled text.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	styles Styles
}

// NewPrinter builds a Printer. Colors are enabled only when isTTY is true.
func NewPrinter(w io.Writer, jsonMode, isTTY bool) *Printer {
	return &Printer{w: w, errW: w, json: jsonMode, styles: newStyles(isTTY && !jsonMode)}
}

// WithStderr routes human-mode errors and warnings to w.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer emits JSON.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// Success prints data. Human mode prints the "message" key when present and
// key/value lines otherwise.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		p.printf(p.w, "%s\n", p.styles.Success.Render(msg))
		return nil
	}
	for _, key := range sortedKeys(data) {
		p.KeyValue(key, fmt.Sprint(data[key]))
	}
	return nil
}

// Error prints err as {"error", "code"} in JSON mode or a styled line.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}
	message := exitErr.Message
	if exitErr.Cause != nil && !strings.Contains(message, exitErr.Cause.Error()) {
		message += ": " + exitErr.Cause.Error()
	}
	if p.json {
		_ = p.WriteJSON(map[string]any{"error": message, "code": exitErr.Code})
		return
	}
	p.printf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), message)
}

// Warn prints a warning.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	p.printf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg)
}

// Println writes a raw line. It is silent in JSON mode.
func (p *Printer) Println(args ...any) {
	if p.json {
		return
	}
	_, _ = fmt.Fprintln(p.w, args...)
}

// Section prints an underlined heading.
func (p *Printer) Section(title string) {
	if p.json {
		return
	}
	p.printf(p.w, "\n%s\n%s\n", p.styles.Title.Render(title), p.styles.Muted.Render(strings.Repeat("─", cellWidth(title))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key, value string) {
	if p.json {
		return
	}
	p.printf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value)
}

// Table prints aligned columns. Widths count East Asian wide runes as two
// cells.
func (p *Printer) Table(headers []string, rows [][]string) {
	if p.json || len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && cellWidth(cell) > widths[i] {
				widths[i] = cellWidth(cell)
			}
		}
	}
	line := func(cells []string, style lipgloss.Style) {
		var b strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(style.Render(cell))
			b.WriteString(strings.Repeat(" ", widths[i]-cellWidth(cell)))
		}
		p.printf(p.w, "%s\n", strings.TrimRight(b.String(), " "))
	}
	line(headers, p.styles.Bold)
	for _, row := range rows {
		line(row, lipgloss.NewStyle())
	}
}

// WriteJSON writes v as indented JSON.
func (p *Printer) WriteJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode json: %w", err)
	}
	return nil
}

func (p *Printer) printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
