package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Grades(t *testing.T) {
	assert.Equal(t, []Grade{Grade10, Grade11, Grade12}, Default().Grades())
}

func TestChapters(t *testing.T) {
	tests := []struct {
		grade Grade
		want  int
	}{
		{Grade10, 9},
		{Grade11, 4},
		{Grade12, 4},
		{Grade(9), 0},
	}
	for _, tt := range tests {
		got := Default().Chapters(tt.grade)
		require.NotNil(t, got, "grade %d", tt.grade)
		assert.Len(t, got, tt.want, "grade %d", tt.grade)
	}
}

func TestChapters_Order(t *testing.T) {
	chapters := Default().Chapters(Grade11)
	require.Len(t, chapters, 4)
	assert.Equal(t, "G11_C1", chapters[0].ID)
	assert.Equal(t, "DAO ĐỘNG", chapters[0].Name)
	assert.Equal(t, "G11_C4", chapters[3].ID)
}

func TestLessons(t *testing.T) {
	lessons := Default().Lessons(Grade10, "G10_C2")
	require.Len(t, lessons, 3)
	assert.Equal(t, Lesson{ID: "G10_C2_L4", Name: "Bài 4: Chuyển động thẳng"}, lessons[0])
	assert.Equal(t, "G10_C2_L6", lessons[2].ID)
}

func TestLessons_NotFound(t *testing.T) {
	assert.Empty(t, Default().Lessons(Grade10, "G11_C1"), "chapter belongs to another grade")
	assert.Empty(t, Default().Lessons(Grade10, ""))
	assert.Empty(t, Default().Lessons(Grade(13), "G10_C1"))
	assert.NotNil(t, Default().Lessons(Grade(13), "G10_C1"))
}

func TestLessons_ReturnsCopy(t *testing.T) {
	lessons := Default().Lessons(Grade12, "G12_C4")
	lessons[0].Name = "changed"

	again := Default().Lessons(Grade12, "G12_C4")
	assert.Equal(t, "Bài 14: Hạt nhân và mô hình nguyên tử", again[0].Name)
}

func TestLessonLookup(t *testing.T) {
	l, ok := Default().Lesson(Grade12, "G12_C2", "G12_C2_L6")
	require.True(t, ok)
	assert.Equal(t, "Bài 6: Định luật Boyle. Định luật Charles", l.Name)

	_, ok = Default().Lesson(Grade12, "G12_C2", "G12_C3_L9")
	assert.False(t, ok)
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in      string
		want    Grade
		wantErr bool
	}{
		{"10", Grade10, false},
		{" 12 ", Grade12, false},
		{"Lớp 11", Grade11, false},
		{"lop10", Grade10, false},
		{"9", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGrade(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "grades: ["},
		{"empty", "grades: []"},
		{"bad grade", "grades:\n  - grade: 9\n    chapters:\n      - id: C1\n        name: X\n        lessons:\n          - {id: L1, name: Y}\n"},
		{"duplicate ids", "grades:\n  - grade: 10\n    chapters:\n      - id: C1\n        name: X\n        lessons:\n          - {id: C1, name: Y}\n"},
		{"no lessons", "grades:\n  - grade: 10\n    chapters:\n      - id: C1\n        name: X\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSearch(t *testing.T) {
	matches := Default().Search("dinh luat hooke")
	require.Len(t, matches, 1)
	assert.Equal(t, Grade10, matches[0].Grade)
	assert.Equal(t, "G10_C9", matches[0].Chapter.ID)
	assert.Equal(t, "G10_C9_L23", matches[0].Lesson.ID)

	// A chapter-name hit returns all of its lessons.
	assert.Len(t, Default().Search("DAO ĐỘNG"), 4)
	assert.Empty(t, Default().Search("   "))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "dien truong", Fold("ĐIỆN TRƯỜNG"))
	assert.Equal(t, "song dung", Fold(" Sóng dừng "))
}
