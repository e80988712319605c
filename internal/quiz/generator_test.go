package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vatly/vatly/internal/curriculum"
	"github.com/vatly/vatly/internal/llm"
)

// testItems is two queued parts: 3 multiple-choice questions on one lesson
// and 2 true/false questions on another.
func testItems(t *testing.T) []RequestItem {
	t.Helper()
	q := NewQueue(nil)
	if _, err := q.Add(Selection{Grade: curriculum.Grade10, ChapterID: "G10_C2", LessonID: "G10_C2_L4", Type: MultipleChoice, Quantity: 3, Difficulty: Know}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := q.Add(Selection{Grade: curriculum.Grade10, ChapterID: "G10_C2", LessonID: "G10_C2_L5", Type: TrueFalse, Quantity: 2, Difficulty: Apply}); err != nil {
		t.Fatalf("add: %v", err)
	}
	return q.Items()
}

func mcQuestion(id int) Question {
	return Question{
		ID:            id,
		Content:       "Một xe chạy với $v = 10$ m/s trong 2 s. Quãng đường đi được là",
		Options:       []string{"10 m", "20 m", "30 m", "40 m"},
		CorrectAnswer: "B",
		Explanation:   "$s = vt = 20$ m",
		Type:          MultipleChoice,
	}
}

func tfQuestion(id int) Question {
	return Question{
		ID:            id,
		Content:       "Một thuyền đi ngang sông.",
		Options:       []string{"Vận tốc tổng hợp lớn hơn.", "Thuyền đi thẳng.", "Thời gian không đổi.", "Quỹ đạo là đường thẳng."},
		CorrectAnswer: "a) Đúng - b) Sai - c) Đúng - d) Đúng",
		Explanation:   "Dùng công thức cộng vận tốc.",
		Type:          TrueFalse,
	}
}

func validResult() Result {
	return Result{
		Title: "Đề ôn tập Vật lý Tổng hợp",
		Questions: []Question{
			mcQuestion(1), mcQuestion(2), mcQuestion(3),
			tfQuestion(4), tfQuestion(5),
		},
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestGenerate_AcceptsValidResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mustJSON(t, validResult())})
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), testItems(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(res.Questions))
	}
	if res.Questions[3].Type != TrueFalse {
		t.Errorf("expected question 4 to be true/false, got %q", res.Questions[3].Type)
	}
	if res.Title != "Đề ôn tập Vật lý Tổng hợp" {
		t.Errorf("unexpected title %q", res.Title)
	}
}

func TestGenerate_RejectsThreeOptionMultipleChoice(t *testing.T) {
	bad := validResult()
	bad.Questions[1].Options = bad.Questions[1].Options[:3]
	mock := llm.NewMockProvider(llm.MockResponse{Content: mustJSON(t, bad)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testItems(t))
	if err == nil {
		t.Fatal("expected error for 3-option multiple choice")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
}

func TestGenerate_EmptyItems(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider should not be called, got %d calls", mock.CallCount())
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testItems(t))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped ErrProviderUnavailable, got %v", err)
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title": "x", "questions": [`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testItems(t))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGenerate_CodeFencedString(t *testing.T) {
	fenced := "```json\n" + string(mustJSON(t, validResult())) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: mustJSON(t, fenced)})
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), testItems(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(res.Questions))
	}
}

func TestGenerate_ValidatorFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Result)
		validator string
	}{
		{
			name:      "ids with a gap",
			mutate:    func(r *Result) { r.Questions[2].ID = 7 },
			validator: "structural",
		},
		{
			name:      "empty title",
			mutate:    func(r *Result) { r.Title = "  " },
			validator: "structural",
		},
		{
			name:      "too few questions",
			mutate:    func(r *Result) { r.Questions = r.Questions[:4] },
			validator: "coverage",
		},
		{
			name: "type mix does not match request",
			mutate: func(r *Result) {
				r.Questions[0] = tfQuestion(1)
			},
			validator: "coverage",
		},
		{
			name: "right type counts in the wrong order",
			mutate: func(r *Result) {
				r.Questions = []Question{
					tfQuestion(1), mcQuestion(2), mcQuestion(3),
					mcQuestion(4), tfQuestion(5),
				}
			},
			validator: "coverage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(&r)
			mock := llm.NewMockProvider(llm.MockResponse{Content: mustJSON(t, r)})
			gen := New(mock, DefaultConfig())

			_, err := gen.Generate(context.Background(), testItems(t))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Validator != tt.validator {
				t.Errorf("expected validator %q, got %q (%s)", tt.validator, verr.Validator, verr.Message)
			}
		})
	}
}

func TestCoverageValidator_PositionsFollowItems(t *testing.T) {
	items := testItems(t)
	v := &CoverageValidator{}

	r := validResult()
	if verr := v.Validate(&r, items); verr != nil {
		t.Fatalf("valid result rejected: %s", verr.Message)
	}

	r.Questions[2], r.Questions[3] = r.Questions[3], r.Questions[2]
	verr := v.Validate(&r, items)
	if verr == nil {
		t.Fatal("expected swapped questions to fail")
	}
	if !strings.Contains(verr.Message, "question 3") {
		t.Errorf("message should name the first misplaced question: %s", verr.Message)
	}
	if !verr.Retryable {
		t.Error("coverage failures should be retryable")
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mustJSON(t, validResult())})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testItems(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mock.Purposes[0]; got != llm.PurposeQuizGen {
		t.Errorf("expected purpose %q, got %q", llm.PurposeQuizGen, got)
	}
	req := mock.Calls[0]
	if req.Schema != ResultSchema {
		t.Error("expected ResultSchema on request")
	}
	if req.Temperature != 0.4 {
		t.Errorf("expected temperature 0.4, got %v", req.Temperature)
	}
	if !strings.Contains(req.System, "Trắc nghiệm") {
		t.Error("system prompt should describe the multiple choice contract")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Phần 1:", "Phần 2:", "Bài 4: Chuyển động thẳng", "Bài 5: Chuyển động tổng hợp", "Số câu: 3", "Hình thức: Đúng/Sai", "Mức độ: Vận dụng"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}
