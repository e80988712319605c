package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/curriculum"
)

var curriculumCmd = &cobra.Command{
	Use:     "curriculum",
	Aliases: []string{"ct"},
	Short:   "Browse the grade 10-12 physics curriculum",
}

var curriculumListCmd = &cobra.Command{
	Use:   "list [grade]",
	Short: "List chapters and lessons, optionally for one grade",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := curriculum.Default()
		grades := cat.Grades()
		if len(args) == 1 {
			g, err := curriculum.ParseGrade(args[0])
			if err != nil {
				return err
			}
			grades = []curriculum.Grade{g}
		}
		printCurriculum(cmd.OutOrStdout(), cat, grades)
		return nil
	},
}

var curriculumSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find lessons by name, ignoring diacritics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches := curriculum.Default().Search(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintln(out, "No lessons found.")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%-12s  %s  ›  %s\n", m.Lesson.ID, m.Grade, m.Lesson.Name)
			fmt.Fprintf(out, "%-12s  %s\n", "", m.Chapter.Name)
		}
		return nil
	},
}

func printCurriculum(w io.Writer, cat *curriculum.Catalog, grades []curriculum.Grade) {
	for i, g := range grades {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.ToUpper(g.String()))
		for _, ch := range cat.Chapters(g) {
			fmt.Fprintf(w, "  %-8s  %s\n", ch.ID, ch.Name)
			for _, l := range ch.Lessons {
				fmt.Fprintf(w, "    %-12s  %s\n", l.ID, l.Name)
			}
		}
	}
}

func init() {
	curriculumCmd.AddCommand(curriculumListCmd)
	curriculumCmd.AddCommand(curriculumSearchCmd)
}
