package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vatly/vatly/internal/curriculum"
)

type searchHit struct {
	Grade       curriculum.Grade `json:"grade"`
	ChapterID   string           `json:"chapterId"`
	ChapterName string           `json:"chapterName"`
	LessonID    string           `json:"lessonId"`
	LessonName  string           `json:"lessonName"`
}

// GET /api/curriculum[?q=...]
func (s *Server) listCurriculum(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		hits := []searchHit{}
		for _, m := range s.catalog.Search(q) {
			hits = append(hits, searchHit{
				Grade:       m.Grade,
				ChapterID:   m.Chapter.ID,
				ChapterName: m.Chapter.Name,
				LessonID:    m.Lesson.ID,
				LessonName:  m.Lesson.Name,
			})
		}
		respondSuccess(c, http.StatusOK, hits, "")
		return
	}

	nodes := []curriculum.Node{}
	for _, g := range s.catalog.Grades() {
		nodes = append(nodes, curriculum.Node{Grade: g, Chapters: s.catalog.Chapters(g)})
	}
	respondSuccess(c, http.StatusOK, nodes, "")
}

// GET /api/curriculum/:grade
func (s *Server) getGrade(c *gin.Context) {
	g, err := curriculum.ParseGrade(c.Param("grade"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, curriculum.Node{Grade: g, Chapters: s.catalog.Chapters(g)}, "")
}
