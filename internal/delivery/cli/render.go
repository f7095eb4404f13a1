package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/ident"
	"github.com/yourusername/crm-records/internal/usecase"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}).
			Bold(true)

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"})

	titleStyle = lipgloss.NewStyle().Bold(true)
)

func severityLabel(sev usecase.Severity) string {
	switch sev {
	case usecase.Information:
		return infoStyle.Render(sev.String())
	case usecase.Warning:
		return warningStyle.Render(sev.String())
	default:
		return criticalStyle.Render(sev.String())
	}
}

// renderRecords draws rows under the given header; cells are stringified the
// same way as in exports.
func renderRecords(w io.Writer, columns []string, rows []entity.Record) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(columns))
		for j, col := range columns {
			line[j] = r.String(col)
		}
		cells[i] = line
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(columns...).
		Rows(cells...)
	fmt.Fprintln(w, t.String())
}

func renderTable(w io.Writer, tbl *entity.RecordTable) {
	if tbl.IsEmpty() {
		fmt.Fprintf(w, "No %s yet.\n", tbl.Kind())
		return
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d)", tbl.Kind().Title(), tbl.Len())))
	renderRecords(w, tbl.Columns(), tbl.Rows())
}

func renderSummary(w io.Writer, s usecase.Summary) {
	fmt.Fprintln(w, titleStyle.Render(s.Kind.Title()))
	fmt.Fprintf(w, "Rows: %d\n", s.Rows)
	fmt.Fprintf(w, "Columns: %d\n", s.Columns)
	if len(s.Categories) == 0 {
		return
	}
	fmt.Fprintln(w, "Categories:")
	width := 0
	for _, c := range s.Categories {
		if n := len([]rune(c.Category)); n > width {
			width = n
		}
	}
	for _, c := range s.Categories {
		pad := strings.Repeat(" ", width-len([]rune(c.Category)))
		fmt.Fprintf(w, "  %s%s  %d\n", c.Category, pad, c.Count)
	}
}

func renderHistory(w io.Writer, entries []entity.Activity) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No activity recorded.")
		return
	}
	rows := make([][]string, len(entries))
	for i, a := range entries {
		rows[i] = []string{
			a.Timestamp.Local().Format(ident.TimestampLayout),
			a.Action,
			string(a.Kind),
			fmt.Sprintf("%d", a.Rows),
			a.Details,
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("time", "action", "kind", "rows", "details").
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}
