package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
	"github.com/vatly/vatly/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz and chat API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")
		maxSessions, _ := cmd.Flags().GetInt("max-sessions")
		if env := os.Getenv("VATLY_ADDR"); env != "" && !cmd.Flags().Changed("addr") {
			addr = env
		}

		setupLogging(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: serveLogLevel()}))
		if os.Getenv(gin.EnvGinMode) == "" {
			gin.SetMode(gin.ReleaseMode)
		}

		provider, st, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := server.New(server.Options{
			Catalog:   curriculum.Default(),
			Generator: quiz.New(provider, quiz.DefaultConfig()),
			Provider:  provider,
			Chat:      chat.DefaultConfig(),
			Exporter:  export.New(),

			SessionTTL:  sessionTTL,
			MaxSessions: maxSessions,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

// serveLogLevel is logLevel with an info floor, so requests are logged by
// default.
func serveLogLevel() slog.Level {
	if os.Getenv("VATLY_LOG_LEVEL") == "" {
		return slog.LevelInfo
	}
	return logLevel()
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides VATLY_ADDR)")
	serveCmd.Flags().Duration("session-ttl", 2*time.Hour, "Drop chat sessions idle for this long")
	serveCmd.Flags().Int("max-sessions", 500, "Maximum live chat sessions; the least recently used is evicted")
}
