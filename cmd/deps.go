package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/store"
)

// openStore opens the event database selected by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openProvider opens the store and builds an env-configured provider that
// records every call in it. The caller closes the store.
func openProvider(cmd *cobra.Command) (llm.Provider, *store.Store, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return provider, st, nil
}

// outputDir is where exported files land: VATLY_OUT_DIR or the working
// directory.
func outputDir() string {
	if d := os.Getenv("VATLY_OUT_DIR"); d != "" {
		return d
	}
	return "."
}
