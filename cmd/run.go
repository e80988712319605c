package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/app"
	"github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/quiz"
	"github.com/vatly/vatly/internal/screens/home"
	"github.com/vatly/vatly/internal/selfupdate"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := home.Options{
		Catalog:       curriculum.Default(),
		Quiz:          quiz.DefaultConfig(),
		Chat:          chat.DefaultConfig(),
		Exporter:      export.New(),
		OutDir:        outputDir(),
		LatestVersion: latestVersion(ctx),
	}

	status := ""
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Provider = provider
		status = provider.ModelID()
	}

	return app.Run(opts, status)
}

// latestVersion asks GitHub for a newer release without holding up
// startup for long.
func latestVersion(ctx context.Context) string {
	if version == "(devel)" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return selfupdate.NewChecker(selfupdate.WithTimeout(2*time.Second)).LatestIfNewer(ctx, version)
}
