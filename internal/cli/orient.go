package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

var orientations = []layout.Orientation{
	layout.OrientationSingle,
	layout.OrientationRightAngled,
	layout.OrientationMultiple,
}

// orientCommand creates the orient command, a debug tool showing the
// rotation each word gets under every orientation.
func (c *CLI) orientCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "orient [words...]",
		Short: "Print word rotations per orientation (debug tool)",
		Long: `Print the rotation each word gets under every orientation.

Rotations depend only on the raw text, so a word keeps its angle across data
updates and runs.`,
		Example: `  wordcloud orient kibana go rust
  wordcloud orient --words words.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if file != "" {
				words, err := loadWords(file)
				if err != nil {
					return err
				}
				for _, w := range words {
					texts = append(texts, w.RawText)
				}
			}
			if len(texts) == 0 {
				return fmt.Errorf("at least one word required")
			}
			renderOrientTable(cmd.OutOrStdout(), texts)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "words", "", "read words from a word list file")
	return cmd
}

// orientRows returns one row per text: the text followed by its rotation
// under each orientation.
func orientRows(texts []string) [][]string {
	rows := make([][]string, 0, len(texts))
	for _, t := range texts {
		row := []string{t}
		for _, o := range orientations {
			row = append(row, strconv.FormatFloat(layout.Rotation(t, o), 'f', -1, 64)+"°")
		}
		rows = append(rows, row)
	}
	return rows
}

func renderOrientTable(w io.Writer, texts []string) {
	headers := []string{"Word"}
	for _, o := range orientations {
		headers = append(headers, o.String())
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(orientRows(texts)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorWhite)
			default:
				return cell.Foreground(colorCyan).Align(lipgloss.Right)
			}
		})

	fmt.Fprintln(w, t.Render())
}
