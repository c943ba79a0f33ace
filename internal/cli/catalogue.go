package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/intcalc/internal/toolkit"
)

// DisplayCatalogue renders the available operations as a table.
//
// Parameters:
//   - out: The destination. Colors are used only if out supports them.
//   - ops: The operations to list, in display order.
//   - noColor: Disables styling even on a color terminal.
func DisplayCatalogue(out io.Writer, ops []toolkit.Operation, noColor bool) {
	r := lipgloss.NewRenderer(out)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	name := cell
	border := r.NewStyle()
	if !noColor {
		header = header.Foreground(lipgloss.Color("#FF8C00"))
		name = name.Foreground(lipgloss.Color("#7aa2f7"))
		border = border.Foreground(lipgloss.Color("240"))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers("OPERATION", "FAMILY", "ARGUMENTS", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return name
			default:
				return cell
			}
		})
	for _, op := range ops {
		t.Row(op.Name(), op.Family(), strings.Join(op.Params(), ", "), op.Description())
	}

	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "Select an operation or a whole family with -op, e.g. -op power -- -2 3\n")
}
