package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this vatly binary with a newer release",
	Long: "Downloads the release archive for this platform from GitHub, checks it\n" +
		"against the release's checksum file and swaps it in for the running binary.\n" +
		"Use --to to install a specific tag, including an older one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("to")
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: target},
			func(p selfupdate.UpdateProgress) { fmt.Fprintln(out, p.Message) })

		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "This is a development build; install a release build to use `vatly update`.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "vatly %s is already installed.\n", version)
			return nil
		case errors.Is(err, selfupdate.ErrUnsupportedPlatform):
			return fmt.Errorf("%w\n\nBuild from source: go install github.com/vatly/vatly@latest", err)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nThe binary's directory is not writable. Try: sudo vatly update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().String("to", "", "Release tag to install (default: latest)")
}
