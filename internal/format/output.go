package format

import (
	"encoding/json"
	"fmt"
	"io"

	"habitual/internal/model"
	"habitual/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (a table for habit collections; single habits render as one row)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v, false)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders habits as a bordered table. Values that are not habits fall
// back to indented JSON.
func WriteText(w io.Writer, v any, ascii bool) error {
	var hs []model.Habit
	switch t := v.(type) {
	case []model.Habit:
		hs = t
	case model.Habit:
		hs = []model.Habit{t}
	case *model.Habit:
		if t != nil {
			hs = []model.Habit{*t}
		}
	default:
		return WriteJSON(w, v, true)
	}
	if len(hs) == 0 {
		_, err := fmt.Fprintln(w, "No habits yet")
		return err
	}

	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		rows = append(rows, []string{h.ID, h.Name, statusutil.Badge(h.Status, ascii)})
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
