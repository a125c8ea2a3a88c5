package ai

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the completion service answers
// successfully but with no usable text
var ErrEmptyCompletion = errors.New("completion service returned an empty result")

// Client wraps an external text-completion service. Given a prompt it
// returns a block of text or fails; callers are expected to degrade to
// deterministic fallback content on any error rather than surfacing it
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
