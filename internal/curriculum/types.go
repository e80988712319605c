package curriculum

import (
	"fmt"
	"strconv"
	"strings"
)

// Grade is a high-school grade level.
type Grade int

const (
	Grade10 Grade = 10
	Grade11 Grade = 11
	Grade12 Grade = 12
)

// AllGrades returns the supported grades in display order.
func AllGrades() []Grade {
	return []Grade{Grade10, Grade11, Grade12}
}

// Valid reports whether g is one of the supported grades.
func (g Grade) Valid() bool {
	return g == Grade10 || g == Grade11 || g == Grade12
}

// String returns the display label, e.g. "Lớp 10".
func (g Grade) String() string {
	return fmt.Sprintf("Lớp %d", int(g))
}

// ParseGrade parses "10", "11" or "12". A leading "lop"/"lớp" is tolerated.
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "lớp")
	s = strings.TrimPrefix(s, "lop")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q", s)
	}
	g := Grade(n)
	if !g.Valid() {
		return 0, fmt.Errorf("unsupported grade %d (want 10, 11 or 12)", n)
	}
	return g, nil
}

// Lesson is a single lesson within a chapter.
type Lesson struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Chapter is an ordered group of lessons.
type Chapter struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Lessons []Lesson `yaml:"lessons" json:"lessons"`
}

// Node is the chapter list for one grade.
type Node struct {
	Grade    Grade     `yaml:"grade" json:"grade"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}
