package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/pipeline"
	"github.com/matzehuels/tenji/pkg/tenji"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) inspectCommand() *cobra.Command {
	var file, raised, flat string

	cmd := &cobra.Command{
		Use:   "inspect [mora...]",
		Short: "Show how each token is decomposed and encoded",
		Long: `Inspect prints one table row per token: its consonant and consonant kind,
the gemination and palatalization marks, the vowel core, and the cells it
produces as bit patterns, dot numbers and Unicode braille. The combined grid
follows the table.`,
		Example: `  tenji inspect GGYA N PPA`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, fromStream, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			opts := pipeline.Options{Text: text, Raised: raised, Flat: flat, Normalize: fromStream}
			opts.FromConfig(c.cfg)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			tokens, err := tenji.Analyze(opts.Text)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidToken, err, "cannot convert input")
			}
			renderInspection(cmd.OutOrStdout(), tokens, opts.Glyphs())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "i", "", "read input from file")
	cmd.Flags().StringVar(&raised, "raised", "", "symbol for a raised dot")
	cmd.Flags().StringVar(&flat, "flat", "", "symbol for a flat dot")
	return cmd
}

// inspectRows returns one table row per token.
func inspectRows(tokens []tenji.Token) [][]string {
	rows := make([][]string, 0, len(tokens))
	for i, t := range tokens {
		m := t.Mora
		consonant, kind := "·", "·"
		if m.Consonant != tenji.NoConsonant {
			consonant = m.Consonant.String()
			kind = m.Consonant.Kind().String()
		}

		var marks []string
		if m.Geminated {
			marks = append(marks, "geminated")
		}
		if m.Palatalized {
			marks = append(marks, "palatalized")
		}
		if len(marks) == 0 {
			marks = append(marks, "·")
		}

		bits := make([]string, len(t.Cells))
		dots := make([]string, len(t.Cells))
		var braille strings.Builder
		for j, cell := range t.Cells {
			bits[j] = cell.String()
			dots[j] = dotList(cell)
			braille.WriteRune(cell.Rune())
		}

		rows = append(rows, []string{
			strconv.Itoa(i),
			t.Text,
			consonant,
			kind,
			strings.Join(marks, ", "),
			m.Core.String(),
			strings.Join(bits, " "),
			strings.Join(dots, " "),
			braille.String(),
		})
	}
	return rows
}

// dotList formats a cell's raised dots as "1-2-5"; an empty cell is "0".
func dotList(c tenji.Cell) string {
	ds := c.Dots()
	if len(ds) == 0 {
		return "0"
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

func renderInspection(w io.Writer, tokens []tenji.Token, g tenji.Glyphs) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("#", "Token", "Consonant", "Kind", "Marks", "Core", "Cells", "Dots", "Braille").
		Rows(inspectRows(tokens)...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)

	cells := tenji.Flatten(tokens)
	fmt.Fprintln(w, tenji.Layout(cells, g))
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleDim.Render(plural(len(tokens), "token")+" · "+plural(len(cells), "cell")))
}
