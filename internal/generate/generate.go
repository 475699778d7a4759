// Package generate abstracts the optional natural-language phrasing backend.
//
// The assistant works without it: every caller must hold a deterministic
// local fallback for the ok=false case.
package generate

import "context"

// Generator turns a structured prompt into natural language.
// ok is false when the backend is unavailable; implementations never return
// an error so the caller's fallback branch stays a plain conditional.
type Generator interface {
	Generate(ctx context.Context, prompt string) (text string, ok bool)
}

// Unavailable is a Generator that is always unavailable. It stands in when
// no backend is configured and in tests that exercise fallback paths.
type Unavailable struct{}

func (Unavailable) Generate(ctx context.Context, prompt string) (string, bool) {
	return "", false
}
