package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/theme"
)

func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List theme presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, themesTable())
			return nil
		},
	}
}

// themesTable renders every preset with a color swatch per palette entry.
func themesTable() string {
	swatch := func(hex string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■ " + hex)
	}

	rows := make([][]string, 0, len(theme.Names()))
	for _, name := range theme.Names() {
		p, _ := theme.Lookup(name)
		if name == theme.DefaultName {
			name += " *"
		}
		rows = append(rows, []string{name, swatch(p.Background), swatch(p.Primary), swatch(p.Secondary), swatch(p.Text), swatch(p.Border)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Background", "Primary", "Secondary", "Text", "Border").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
