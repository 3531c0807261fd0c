package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMenu draws items as a numbered table with a cursor on idx.
func renderMenu(header string, items []string, idx int) string {
	var b strings.Builder
	idColWidth := lipgloss.Width("#")
	itemsCountWidth := lipgloss.Width(fmt.Sprintf("%d", len(items)))
	if itemsCountWidth > idColWidth {
		idColWidth = itemsCountWidth
	}
	idColWidth += 2 // selection marker and a space

	itemColWidth := lipgloss.Width(header)
	for _, item := range items {
		if w := lipgloss.Width(item); w > itemColWidth {
			itemColWidth = w
		}
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "#", itemColWidth, header))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", itemColWidth))
	b.WriteString("\n")

	for i, item := range items {
		cursor := " "
		if i == idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, idCell, itemColWidth, fitText(item, 40)))
	}

	return strings.TrimRight(b.String(), "\n")
}
