package quiz

import "github.com/vatly/vatly/internal/llm"

func questionTypeEnum() []any {
	out := make([]any, 0, 3)
	for _, t := range QuestionTypes() {
		out = append(out, string(t))
	}
	return out
}

// ResultSchema is the structured-output schema sent to the provider.
var ResultSchema = &llm.Schema{
	Name:        "physics-quiz",
	Description: "Bộ câu hỏi ôn tập Vật lý THPT tổng hợp",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Tiêu đề bộ câu hỏi tổng hợp (Ví dụ: Đề ôn tập Vật lý Tổng hợp)",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type": "integer",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Nội dung câu hỏi, chứa công thức LaTeX",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Danh sách lựa chọn (Nếu có). Với Tự luận thì để rỗng.",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "Đáp án đúng (A/B/C/D hoặc chuỗi đáp án ngắn)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Giải thích chi tiết và phương pháp giải",
						},
						"type": map[string]any{
							"type": "string",
							"enum": questionTypeEnum(),
						},
					},
					"required":             []any{"id", "content", "options", "correctAnswer", "explanation", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}

// contractSchema tightens ResultSchema with the per-type option rules.
// Providers differ in how much conditional schema they accept, so it is
// checked locally on every response instead of being sent.
var contractSchema = &llm.Schema{
	Name:        "physics-quiz-contract",
	Description: "Per-type option contract for physics-quiz",
	Definition: map[string]any{
		"allOf": []any{ResultSchema.Definition},
		"properties": map[string]any{
			"questions": map[string]any{
				"minItems": 1,
				"items": map[string]any{
					"properties": map[string]any{
						"id":      map[string]any{"minimum": 1},
						"content": map[string]any{"minLength": 1},
					},
					"allOf": []any{
						optionRule(MultipleChoice, 4, map[string]any{"enum": []any{"A", "B", "C", "D"}}),
						optionRule(TrueFalse, 4, map[string]any{"minLength": 1}),
						optionRule(ShortAnswer, 0, map[string]any{"minLength": 1}),
					},
				},
			},
		},
	},
}

func optionRule(t QuestionType, options int, answer map[string]any) map[string]any {
	return map[string]any{
		"if": map[string]any{
			"properties": map[string]any{"type": map[string]any{"const": string(t)}},
			"required":   []any{"type"},
		},
		"then": map[string]any{
			"properties": map[string]any{
				"options":       map[string]any{"minItems": options, "maxItems": options},
				"correctAnswer": answer,
			},
		},
	}
}
