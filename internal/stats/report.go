package stats

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

const fallbackWidth = 80

var worstStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// CharError pairs a practice character with its accumulated error count.
type CharError struct {
	Char  byte
	Count float64
}

// CharErrors lists every character with a nonzero weight, worst first,
// ties broken by character.
func CharErrors(w *model.Weights) []CharError {
	var errs []CharError
	for i := 0; i < charset.Size; i++ {
		if w[i] > 0 {
			errs = append(errs, CharError{Char: charset.Char(i), Count: w[i]})
		}
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Count == errs[j].Count {
			return errs[i].Char < errs[j].Char
		}
		return errs[i].Count > errs[j].Count
	})
	return errs
}

// RenderCharErrors formats the per-character error list, one character per
// line, with the worst highlight entries accented.
func RenderCharErrors(errs []CharError, highlight int) []string {
	lines := make([]string, 0, len(errs))
	for i, e := range errs {
		line := fmt.Sprintf("'%c' : %s", e.Char, formatCount(e.Count))
		if i < highlight {
			line = worstStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

// History holds the per-session error series derived from the record file.
type History struct {
	Records  []model.Record
	ErrorPct []float64
	Smoothed []float64
}

// BuildHistory computes the error-percentage series and its moving average
// over the given window.
func BuildHistory(recs []model.Record, window int) History {
	pct := make([]float64, len(recs))
	for i, rec := range recs {
		pct[i] = ErrorPercent(rec.Dist, rec.Len)
	}
	return History{
		Records:  recs,
		ErrorPct: pct,
		Smoothed: MovingAverage(pct, window),
	}
}

// Render formats the session table followed by an error-rate sparkline
// sized to the given width (0 means autodetect from the terminal).
func (h History) Render(width int) []string {
	if width <= 0 {
		width = terminalWidth()
	}

	headers := []string{"date", "speed", "farnsworth", "length", "errors", "err%"}
	rows := make([][]string, 0, len(h.Records))
	for i, rec := range h.Records {
		rows = append(rows, []string{
			rec.Time.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", rec.Speed1),
			fmt.Sprintf("%.1f", rec.Speed2),
			fmt.Sprintf("%.0f", rec.Len),
			fmt.Sprintf("%.0f", rec.Dist),
			fmt.Sprintf("%.1f", h.ErrorPct[i]),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})

	spark := h.Smoothed
	if len(spark) > width {
		spark = spark[len(spark)-width:]
	}
	if len(spark) > 1 {
		lines = append(lines, "", "error rate trend:", Sparkline(spark))
	}
	return lines
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlign))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign map[int]bool) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		pad := strings.Repeat(" ", widths[i]-len(cell))
		if rightAlign[i] {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return b.String()
}

func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
