package advisory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 2 * time.Minute

// Advice is a successful answer.
type Advice struct {
	RequestID string
	Text      string
	// Shared is set when the answer came from an identical request that
	// was already in flight.
	Shared bool
}

// Service runs advisory requests. Identical prompts issued while one is
// outstanding share its result.
type Service struct {
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
	group     singleflight.Group
	newID     func() string
}

// NewService wraps generator. A nil generator behaves like Disabled and a
// non-positive timeout means DefaultTimeout.
func NewService(generator Generator, timeout time.Duration, logger *zap.Logger) *Service {
	if generator == nil {
		generator = Disabled{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Enabled reports whether a model is configured.
func (s *Service) Enabled() bool {
	_, disabled := s.generator.(Disabled)
	return !disabled
}

type flightResult struct {
	id   string
	text string
}

// Suggest sends prompt to the model. Failures are returned as *Error
// matching ErrServiceFailure, except ErrNotConfigured which is returned
// as is. A caller whose ctx ends stops waiting and gets ctx.Err().
func (s *Service) Suggest(ctx context.Context, prompt string) (*Advice, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	sum := sha256.Sum256([]byte(prompt))
	key := hex.EncodeToString(sum[:])

	ch := s.group.DoChan(key, func() (any, error) {
		id := s.newID()
		// The flight outlives a caller that gives up; only the timeout ends it.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		start := time.Now()
		s.logger.Info("Requesting advice", zap.String("request_id", id), zap.Int("prompt_bytes", len(prompt)))

		text, err := s.generator.Suggest(callCtx, prompt)
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				return nil, err
			}
			if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				err = errors.Join(err, context.DeadlineExceeded)
			}
			s.logger.Error("Advice request failed",
				zap.String("request_id", id),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return nil, &Error{RequestID: id, Err: err}
		}

		s.logger.Info("Advice received",
			zap.String("request_id", id),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("answer_bytes", len(text)))
		return flightResult{id: id, text: text}, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		res := r.Val.(flightResult)
		return &Advice{RequestID: res.id, Text: res.text, Shared: r.Shared}, nil
	}
}
