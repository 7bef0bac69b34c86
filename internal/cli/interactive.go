package cli

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/tenji"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	gridStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// convertModel - live conversion
// =============================================================================

// convertModel re-converts the whole line after every edit.
type convertModel struct {
	encoder tenji.Encoder
	input   []rune

	grid    string
	braille string
	err     error

	// accepted is set when the user confirms with enter.
	accepted bool
}

func newConvertModel(enc tenji.Encoder) convertModel {
	return convertModel{encoder: enc}
}

func (m convertModel) Init() tea.Cmd {
	return nil
}

func (m convertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.err == nil && m.grid != "" {
			m.accepted = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		for _, r := range key.Runes {
			m.input = append(m.input, unicode.ToUpper(r))
		}
	default:
		return m, nil
	}

	m.convert()
	return m, nil
}

func (m *convertModel) convert() {
	m.grid, m.braille, m.err = "", "", nil
	// A trailing space means the next token has not been typed yet.
	text := strings.TrimSuffix(string(m.input), " ")
	if text == "" {
		return
	}
	cells, err := tenji.Encode(text)
	if err != nil {
		m.err = err
		return
	}
	m.grid = tenji.Layout(cells, m.encoder.Glyphs)
	m.braille = tenji.Unicode(cells)
}

func (m convertModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("tenji"))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("› "))
	b.WriteString(string(m.input))
	b.WriteString(cursorStyle.Render(" "))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleError.Render(m.err.Error()))
		b.WriteString("\n")
	case m.grid != "":
		b.WriteString(gridStyle.Render(m.grid))
		b.WriteString("\n\n")
		b.WriteString(gridStyle.Render(StyleHighlight.Render(m.braille)))
		b.WriteString("\n")
	default:
		b.WriteString(helpStyle.Render("type mora separated by spaces, e.g. KA SI TU"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("⏎ accept  ctrl+u clear  esc quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

func (c *CLI) interactiveCommand() *cobra.Command {
	var raised, flat string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Convert as you type",
		Long: `Interactive mode converts the line after every keystroke. Letters are
uppercased as they are typed. Press enter to print the final grid to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raised == "" {
				raised = c.cfg.Glyphs.Raised
			}
			if flat == "" {
				flat = c.cfg.Glyphs.Flat
			}
			g, err := tenji.ParseGlyphs(raised, flat)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGlyphs, err, "invalid glyphs")
			}
			enc, err := tenji.NewEncoder(g)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newConvertModel(enc),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(c.Err),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("interactive: %w", err)
			}

			if m, ok := final.(convertModel); ok && m.accepted {
				fmt.Fprintln(cmd.OutOrStdout(), m.grid)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&raised, "raised", "", "symbol for a raised dot")
	cmd.Flags().StringVar(&flat, "flat", "", "symbol for a flat dot")
	return cmd
}
