// Package resilience wraps repositories with a circuit breaker so a failing
// store sheds load instead of stacking timeouts.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// BreakerConfig holds circuit breaker settings
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the default settings for a named breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Breaker guards calls to one backing store
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	name    string
	metrics *observability.Collector
}

// NewBreaker creates a breaker; metrics may be nil
func NewBreaker(config BreakerConfig, metrics *observability.Collector, logger *zap.Logger) *Breaker {
	b := &Breaker{name: config.Name, metrics: metrics}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if metrics != nil {
				metrics.SetBreakerState(name, float64(to))
			}
		},
		IsSuccessful: isInfrastructureHealthy,
	})
	if metrics != nil {
		metrics.SetBreakerState(config.Name, float64(gobreaker.StateClosed))
	}
	return b
}

// State reports the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// isInfrastructureHealthy counts only storage faults as failures; a missing
// note, a duplicate name or a caller that gave up says nothing about the
// store's health.
func isInfrastructureHealthy(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return pkgerrors.IsAppError(err) && !pkgerrors.IsInternal(err)
}

func call[T any](b *Breaker, operation string, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		v, err := fn()
		return v, err
	})
	if b.metrics != nil {
		b.metrics.ObserveRepository(b.name, operation, err)
	}

	var zero T
	if err != nil {
		if isBreakerRejection(err) {
			return zero, pkgerrors.NewUnavailableError(b.name).WithCause(err)
		}
		if v, ok := out.(T); ok {
			return v, err
		}
		return zero, err
	}
	return out.(T), nil
}

func exec(b *Breaker, operation string, fn func() error) error {
	_, err := call(b, operation, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
