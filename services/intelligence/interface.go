package ai

import "context"

// TextGenerator turns a prompt into free text. Callers treat the output as advisory.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ResponseStore caches generated text by key.
type ResponseStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
