package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vatly",
	Short: "Trợ lý Vật lý THPT: tạo đề kiểm tra và hỏi đáp",
	Long: "Vatly: terminal app for Vietnamese high-school physics (grades 10-12).\n" +
		"Builds quizzes from the GDPT 2018 curriculum with an LLM, exports them to Word\n" +
		"and chats with a physics tutor.\n\n" +
		"Set VATLY_LLM_PROVIDER plus the matching VATLY_<PROVIDER>_API_KEY, or one of\n" +
		"GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY.\n" +
		"A .env file in the working directory is loaded first.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal.
		_ = godotenv.Load()
		setupLogging(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VATLY_DB env var)")

	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VATLY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func setupLogging(h slog.Handler) {
	slog.SetDefault(slog.New(h))
}

// logLevel reads VATLY_LOG_LEVEL; the TUI stays quiet unless asked.
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("VATLY_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
