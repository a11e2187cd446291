// Package advisory asks a language model for PTO planning suggestions.
//
// The model only ever sees a text prompt built from an already computed
// plan and its answer is passed through untouched. Nothing in the
// accounting depends on it, so a failure here never invalidates a plan.
package advisory

import (
	"context"
	"errors"
	"fmt"
)

// Apology is shown in place of advice when the model call fails.
const Apology = "Sorry, the planning assistant could not answer right now. " +
	"The office-day summary is still accurate; please try again in a moment."

var (
	// ErrServiceFailure matches every failed or timed out model call.
	ErrServiceFailure = errors.New("advisory service failure")
	// ErrNotConfigured is returned when no model credentials were supplied.
	ErrNotConfigured = errors.New("advisory model is not configured")
)

// Generator turns a prompt into free-form advice text.
type Generator interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Suggest(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled is the Generator used when no model is configured.
type Disabled struct{}

func (Disabled) Suggest(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// Error is a failed advisory request.
type Error struct {
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("advisory request %s failed: %v", e.RequestID, e.Err)
}

// Unwrap exposes both ErrServiceFailure and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrServiceFailure, e.Err}
}
