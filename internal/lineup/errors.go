package lineup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeights is returned when a weight vector cannot form a
	// probability distribution: zero total, negative, NaN or missing entries.
	ErrInvalidWeights = errors.New("invalid weights")
	// ErrInsufficientCandidates is returned when a draw asks for more distinct
	// players than the candidate set holds.
	ErrInsufficientCandidates = errors.New("insufficient candidates")
	// ErrGenerationExhausted is matched by *GenerationExhaustedError.
	ErrGenerationExhausted = errors.New("generation exhausted")

	ErrEmptyPool     = errors.New("empty player pool")
	ErrPoolTooSmall  = errors.New("player pool smaller than lineup size")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrUnknownRole   = errors.New("unknown role")
	ErrInvalidConfig = errors.New("invalid generation config")
)

// GenerationExhaustedError reports a lineup that could not be produced within
// the configured attempt budget.
type GenerationExhaustedError struct {
	Index    int // zero-based lineup index within the batch
	Attempts int
	Reason   string // last unmet constraint observed
}

func (e *GenerationExhaustedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("lineup %d: no valid lineup after %d attempts", e.Index+1, e.Attempts)
	}
	return fmt.Sprintf("lineup %d: no valid lineup after %d attempts: %s", e.Index+1, e.Attempts, e.Reason)
}

func (e *GenerationExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}

// attemptError aborts a single construction attempt. It never leaves the
// generation loop.
type attemptError struct {
	reason string
	err    error
}

func (e *attemptError) Error() string {
	if e.err == nil {
		return e.reason
	}
	return fmt.Sprintf("%s: %v", e.reason, e.err)
}

func (e *attemptError) Unwrap() error { return e.err }

func abort(err error, format string, args ...interface{}) error {
	return &attemptError{reason: fmt.Sprintf(format, args...), err: err}
}
