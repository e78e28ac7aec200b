// Package llm wraps the external text-generation collaborator. The service
// treats it as a black box: one blocking round-trip per accepted round, no
// retries, no streaming, and the returned text is displayed verbatim.
package llm

import (
	"context"
	"errors"
)

// ErrService marks a failed generation round-trip. The caller surfaces it to
// the user and leaves session state exactly as it was.
var ErrService = errors.New("text generation service failed")

// Generator produces one completion for a system/user message pair.
// Implementations must return errors as values and never panic; a non-nil
// error voids the round attempt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
