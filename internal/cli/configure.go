package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/theme"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// errAborted is returned when the picker is closed without a selection.
var errAborted = errors.New("configuration aborted")

func (c *CLI) configureCommand() *cobra.Command {
	var (
		username string
		baseURL  string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Pick a card and theme interactively and print the README embed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username != "" {
				if err := apperr.ValidateUsername(username); err != nil {
					return err
				}
			}
			final, err := tea.NewProgram(newConfigureModel()).Run()
			if err != nil {
				return err
			}
			m := final.(configureModel)
			if !m.done {
				return errAborted
			}
			p := card.Params{Type: m.kind, Username: username, ThemeName: m.theme}
			printSuccess("Add this to your README:")
			fmt.Fprintln(c.out, embedMarkdown(baseURL, p))
			printNextStep("Serve it locally", "statcard serve")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "GitHub username")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "public URL of the statcard server")
	return cmd
}

// embedMarkdown returns a README image tag pointing at the card endpoint.
func embedMarkdown(baseURL string, p card.Params) string {
	u := strings.TrimRight(baseURL, "/") + "/api/card?" + p.Query().Encode()
	return fmt.Sprintf("![%s card](%s)", card.ParseKind(string(p.Type)), u)
}

// =============================================================================
// configureModel - two-step card and theme picker
// =============================================================================

type configureStep int

const (
	stepKind configureStep = iota
	stepTheme
)

type configureModel struct {
	step   configureStep
	kinds  []card.Kind
	themes []string
	cursor int

	kind  card.Kind
	theme string
	done  bool
}

func newConfigureModel() configureModel {
	return configureModel{kinds: card.Kinds(), themes: theme.Names()}
}

func (m configureModel) Init() tea.Cmd {
	return nil
}

func (m configureModel) options() []string {
	if m.step == stepKind {
		out := make([]string, len(m.kinds))
		for i, k := range m.kinds {
			out[i] = string(k)
		}
		return out
	}
	return m.themes
}

func (m configureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options())-1 {
			m.cursor++
		}
	case "enter":
		if m.step == stepKind {
			m.kind = m.kinds[m.cursor]
			m.step = stepTheme
			m.cursor = 0
			return m, nil
		}
		m.theme = m.themes[m.cursor]
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m configureModel) View() string {
	var b strings.Builder

	title := "Select Card"
	if m.step == stepTheme {
		title = "Select Theme  " + listDimStyle.Render(string(m.kind))
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, opt := range m.options() {
		line := "  " + opt
		if m.step == stepTheme {
			p, _ := theme.Lookup(opt)
			line = fmt.Sprintf("  %-12s %s", opt, lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary)).Render("■■■"))
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
