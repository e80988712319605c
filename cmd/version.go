package cmd

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/selfupdate"
)

// version is stamped by the release build with -ldflags "-X".
var version = "(devel)"

func init() {
	// `go install github.com/vatly/vatly@v1.2.3` leaves version unstamped
	// but records the module version.
	if version != "(devel)" {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vatly version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vatly %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if res.UpdateAvailable {
			fmt.Fprintf(out, "Có bản mới %s: chạy `vatly update` (%s)\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(out, "Đang dùng bản mới nhất.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check GitHub for a newer release")
}
