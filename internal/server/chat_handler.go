package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vatly/vatly/internal/chat"
)

type attachmentRequest struct {
	Name string `json:"name"`
	Data []byte `json:"data"` // base64 in JSON
}

type messageRequest struct {
	Text        string              `json:"text"`
	Attachments []attachmentRequest `json:"attachments"`
}

type sessionResponse struct {
	ID         string         `json:"id"`
	Transcript []chat.Message `json:"transcript"`
}

type messageResponse struct {
	Reply chat.Message `json:"reply"`
}

// POST /api/chat/sessions
func (s *Server) createSession(c *gin.Context) {
	sess := chat.NewSession(s.provider, s.chatCfg)

	s.sessions.add(sess)

	respondSuccess(c, http.StatusCreated, sessionResponse{ID: sess.ID, Transcript: sess.Transcript()}, "Session created")
}

// GET /api/chat/sessions/:id
func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, sessionResponse{ID: sess.ID, Transcript: sess.Transcript()}, "")
}

// DELETE /api/chat/sessions/:id
func (s *Server) deleteSession(c *gin.Context) {
	if !s.sessions.remove(c.Param("id")) {
		respondError(c, http.StatusNotFound, "Session not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "Session deleted")
}

// POST /api/chat/sessions/:id/messages
func (s *Server) sendMessage(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	atts := make([]chat.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		att, err := chat.Attach(a.Name, a.Data)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		atts = append(atts, att)
	}
	text, images := chat.Compose(req.Text, atts...)

	reply, err := sess.Send(c.Request.Context(), text, images...)
	var chatErr *chat.ChatError
	if errors.As(err, &chatErr) {
		// The apology is part of the transcript; return it with the error.
		respondError(c, http.StatusBadGateway, chat.FailureReply, messageResponse{Reply: reply})
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, messageResponse{Reply: reply}, "")
}

func (s *Server) session(c *gin.Context) (*chat.Session, bool) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "Session not found", nil)
	}
	return sess, ok
}
