package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vatly/vatly/internal/export"
	"github.com/vatly/vatly/internal/quiz"
)

type generateRequest struct {
	Items []quiz.Selection `json:"items"`
}

type generateResponse struct {
	Items  []quiz.RequestItem `json:"items"`
	Result *quiz.Result       `json:"result"`
}

// POST /api/quiz/generate
//
// Each call builds its own queue from the posted selections; nothing is
// kept between requests.
func (s *Server) generateQuiz(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	q := quiz.NewQueue(s.catalog)
	for i, sel := range req.Items {
		if _, err := q.Add(sel); err != nil {
			handleServiceError(c, fmt.Errorf("item %d: %w", i+1, err))
			return
		}
	}

	items := q.Items()
	if len(items) == 0 {
		handleServiceError(c, quiz.ErrEmptySelection)
		return
	}

	result, err := s.gen.Generate(c.Request.Context(), items)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, generateResponse{Items: items, Result: result}, "Quiz generated")
}

// POST /api/quiz/export
func (s *Server) exportQuiz(c *gin.Context) {
	s.serveDocument(c, s.exporter.Export)
}

// POST /api/quiz/answer-key
func (s *Server) exportAnswerKey(c *gin.Context) {
	s.serveDocument(c, s.exporter.AnswerKey)
}

func (s *Server) serveDocument(c *gin.Context, render func(*quiz.Result) (*export.Document, error)) {
	var result quiz.Result
	if err := c.ShouldBindJSON(&result); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	doc, err := render(&result)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.MIMEType, doc.Data)
}
