package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz without the TUI and export it",
	Long: "Generate a quiz from one or more --item values and write the Word file\n" +
		"and the .xlsx answer key to --out.\n\n" +
		"An item is grade:chapter:lesson:type:quantity:difficulty, for example\n" +
		"  --item 10:G10_C2:G10_C2_L4:mc:5:understand\n" +
		"Types: mc, tf, sa. Difficulties: know, understand, apply.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raws, _ := cmd.Flags().GetStringArray("item")
		outDir, _ := cmd.Flags().GetString("out")
		jsonPath, _ := cmd.Flags().GetString("json")
		if outDir == "" {
			outDir = outputDir()
		}

		q := quiz.NewQueue(curriculum.Default())
		for _, raw := range raws {
			sel, err := parseItem(raw)
			if err != nil {
				return err
			}
			if _, err := q.Add(sel); err != nil {
				return fmt.Errorf("item %q: %w", raw, err)
			}
		}
		if q.Len() == 0 {
			return quiz.ErrEmptySelection
		}

		provider, st, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generating %d questions with %s...\n", q.TotalQuestions(), provider.ModelID())

		runner := quiz.NewRunner(quiz.New(provider, quiz.DefaultConfig()))
		defer runner.Close()
		result, err := runner.Run(cmd.Context(), q.Items())
		if err != nil {
			return err
		}

		if jsonPath != "" {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			fmt.Fprintln(out, "Saved:", jsonPath)
		}
		return saveResult(out, export.New(), result, outDir)
	},
}

// parseItem reads grade:chapter:lesson:type:quantity:difficulty. Quantity
// and difficulty may be omitted (5, understand).
func parseItem(raw string) (quiz.Selection, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 4 || len(parts) > 6 {
		return quiz.Selection{}, fmt.Errorf("item %q: want grade:chapter:lesson:type[:quantity[:difficulty]]", raw)
	}

	grade, err := curriculum.ParseGrade(parts[0])
	if err != nil {
		return quiz.Selection{}, fmt.Errorf("item %q: %w", raw, err)
	}
	typ, err := quiz.ParseQuestionType(parts[3])
	if err != nil {
		return quiz.Selection{}, fmt.Errorf("item %q: %w", raw, err)
	}

	sel := quiz.Selection{
		Grade:      grade,
		ChapterID:  strings.TrimSpace(parts[1]),
		LessonID:   strings.TrimSpace(parts[2]),
		Type:       typ,
		Quantity:   5,
		Difficulty: quiz.Understand,
	}
	if len(parts) > 4 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[4]))
		if err != nil {
			return quiz.Selection{}, fmt.Errorf("item %q: invalid quantity %q", raw, parts[4])
		}
		sel.Quantity = n
	}
	if len(parts) > 5 {
		d, err := quiz.ParseDifficulty(parts[5])
		if err != nil {
			return quiz.Selection{}, fmt.Errorf("item %q: %w", raw, err)
		}
		sel.Difficulty = d
	}
	return sel, nil
}

func init() {
	quizCmd.Flags().StringArrayP("item", "i", nil, "Request item grade:chapter:lesson:type:quantity:difficulty (repeatable)")
	quizCmd.Flags().StringP("out", "o", "", "Output directory (default: VATLY_OUT_DIR or .)")
	quizCmd.Flags().String("json", "", "Also write the raw result as JSON to this path")
}
