package quiz

import (
	"fmt"
	"strings"

	"github.com/vatly/vatly/internal/curriculum"
)

// Quantity bounds for a single request item.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// QuestionType is the display form of a question. Values are the
// Vietnamese labels sent to and echoed back by the model.
type QuestionType string

const (
	MultipleChoice QuestionType = "Trắc nghiệm"
	TrueFalse      QuestionType = "Đúng/Sai"
	ShortAnswer    QuestionType = "Tự luận/Trả lời ngắn"
)

// QuestionTypes lists the question types in menu order.
func QuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer:
		return true
	}
	return false
}

// OptionCount is the number of options a question of this type carries.
func (t QuestionType) OptionCount() int {
	if t == ShortAnswer {
		return 0
	}
	return 4
}

// ParseQuestionType accepts a wire label or a short key (mc, tf, sa).
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mc", "multiple-choice", "multiple_choice", strings.ToLower(string(MultipleChoice)):
		return MultipleChoice, nil
	case "tf", "true-false", "true_false", strings.ToLower(string(TrueFalse)):
		return TrueFalse, nil
	case "sa", "short-answer", "short_answer", strings.ToLower(string(ShortAnswer)):
		return ShortAnswer, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Difficulty is the cognitive level requested for a batch of questions.
type Difficulty string

const (
	Know       Difficulty = "Biết"
	Understand Difficulty = "Hiểu"
	Apply      Difficulty = "Vận dụng"
)

// Difficulties lists the difficulty levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Know, Understand, Apply}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Know, Understand, Apply:
		return true
	}
	return false
}

// ParseDifficulty accepts a wire label, its unaccented form, or an English
// key (know, understand, apply).
func ParseDifficulty(s string) (Difficulty, error) {
	switch curriculum.Fold(s) {
	case "know", curriculum.Fold(string(Know)):
		return Know, nil
	case "understand", curriculum.Fold(string(Understand)):
		return Understand, nil
	case "apply", curriculum.Fold(string(Apply)):
		return Apply, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Selection is the user's pending choice before it is queued.
type Selection struct {
	Grade      curriculum.Grade `json:"grade"`
	ChapterID  string           `json:"chapterId"`
	LessonID   string           `json:"lessonId"`
	Type       QuestionType     `json:"type"`
	Quantity   int              `json:"quantity"`
	Difficulty Difficulty       `json:"difficulty"`
}

// RequestItem is one queued, curriculum-resolved generation request.
type RequestItem struct {
	ID          int64            `json:"id"`
	Grade       curriculum.Grade `json:"grade"`
	ChapterID   string           `json:"chapterId"`
	ChapterName string           `json:"chapterName"`
	LessonID    string           `json:"lessonId"`
	LessonName  string           `json:"lessonName"`
	Type        QuestionType     `json:"type"`
	Quantity    int              `json:"quantity"`
	Difficulty  Difficulty       `json:"difficulty"`
}

// Question is a single generated question.
type Question struct {
	// ID is the model-assigned number, expected to run 1..n.
	ID int `json:"id"`

	// Content may embed LaTeX in $...$ or $$...$$.
	Content string `json:"content"`

	// Options holds 4 entries for multiple choice (A-D) and true/false
	// (sub-statements a-d), and none for short answer.
	Options []string `json:"options"`

	// CorrectAnswer is a letter A-D for multiple choice, a composite
	// "a) Đúng - b) Sai - ..." string for true/false, free text otherwise.
	CorrectAnswer string `json:"correctAnswer"`

	Explanation string       `json:"explanation,omitempty"`
	Type        QuestionType `json:"type"`
}

// Result is one generated question set. A new generation replaces it.
type Result struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// TotalQuestions sums the requested quantities of items.
func TotalQuestions(items []RequestItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
