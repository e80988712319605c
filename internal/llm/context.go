package llm

import (
	"context"
	"slices"
)

// Purposes label each LLM call in the event log.
const (
	PurposeQuizGen = "quiz-gen" // one quiz generation batch
	PurposeChat    = "chat"     // one tutor chat turn
	PurposeUnknown = "unknown"
)

// Purposes lists the labels callers attach, in display order.
func Purposes() []string {
	return []string{PurposeQuizGen, PurposeChat}
}

// KnownPurpose reports whether p is one of Purposes.
func KnownPurpose(p string) bool {
	return slices.Contains(Purposes(), p)
}

type purposeKey struct{}

// WithPurpose labels every call made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
