package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
)

var exportCmd = &cobra.Command{
	Use:   "export <result.json>",
	Short: "Export a saved quiz result to Word and an answer key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = outputDir()
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var result quiz.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		return saveResult(cmd.OutOrStdout(), export.New(), &result, outDir)
	},
}

// saveResult writes the .doc and the .xlsx answer key for result into dir.
func saveResult(w io.Writer, exp *export.Exporter, result *quiz.Result, dir string) error {
	renders := []func(*quiz.Result) (*export.Document, error){exp.Export, exp.AnswerKey}
	for _, render := range renders {
		doc, err := render(result)
		if err != nil {
			return err
		}
		path, err := export.Save(dir, doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Saved:", path)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output directory (default: VATLY_OUT_DIR or .)")
}
