// Package server exposes the quiz and chat pipeline as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/quiz"
)

// Options wires the server to its collaborators.
type Options struct {
	Catalog   *curriculum.Catalog // nil means curriculum.Default()
	Generator quiz.Generator
	Provider  llm.Provider // answers chat turns
	Chat      chat.Config
	Exporter  *export.Exporter // nil means export.New()

	SessionTTL  time.Duration // idle chat session lifetime; 0 means 2h
	MaxSessions int           // live chat session cap; 0 means 500
}

// Server holds the routes and the in-memory chat sessions. Sessions live
// only as long as the process and expire when idle.
type Server struct {
	catalog  *curriculum.Catalog
	gen      quiz.Generator
	provider llm.Provider
	chatCfg  chat.Config
	exporter *export.Exporter

	sessions *sessionStore

	engine *gin.Engine
}

// New builds a Server and registers its routes.
func New(opts Options) *Server {
	s := &Server{
		catalog:  opts.Catalog,
		gen:      opts.Generator,
		provider: opts.Provider,
		chatCfg:  opts.Chat,
		exporter: opts.Exporter,
		sessions: newSessionStore(opts.SessionTTL, opts.MaxSessions),
	}
	if s.catalog == nil {
		s.catalog = curriculum.Default()
	}
	if s.exporter == nil {
		s.exporter = export.New()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(traceID())
	r.Use(requestLogger())
	s.registerRoutes(r)
	s.engine = r
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	cur := api.Group("/curriculum")
	cur.GET("", s.listCurriculum)
	cur.GET("/:grade", s.getGrade)

	qz := api.Group("/quiz")
	qz.POST("/generate", s.generateQuiz)
	qz.POST("/export", s.exportQuiz)
	qz.POST("/answer-key", s.exportAnswerKey)

	ch := api.Group("/chat/sessions")
	ch.POST("", s.createSession)
	ch.GET("/:id", s.getSession)
	ch.DELETE("/:id", s.deleteSession)
	ch.POST("/:id/messages", s.sendMessage)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
