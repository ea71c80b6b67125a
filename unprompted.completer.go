package unprompted

import "context"

// CompletionRequest is a single text completion call.
// A Prompt fills Model, Temperature and MaxTokens from its settings;
// only Prompt and Stop change between the calls of one fill.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// Stop ends generation when produced. Empty means no stop sequence.
	Stop string
}

// Completer generates a continuation for a prompt.
//
// Implementations are called sequentially within one fill. A Completer
// shared by concurrent fills must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

// Complete calls f(ctx, req)
func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
