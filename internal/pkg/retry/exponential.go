package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int              // Maximum number of retry attempts
	BaseDelay     time.Duration    // Base delay between retries
	MaxDelay      time.Duration    // Maximum delay between retries
	Multiplier    float64          // Exponential backoff multiplier
	Jitter        bool             // Add randomization to prevent thundering herd
	RetryableFunc func(error) bool // Function to determine if error is retryable
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: TransientOnly(),
	}
}

// TransientOnly retries transient failures and stops on terminal ones.
// Unclassified errors are retried: most failures out of the store and
// transport layers are wrapped, and an unwrapped error is more likely a
// missed wrap than a terminal condition.
func TransientOnly() func(error) bool {
	return func(err error) bool {
		if err == nil {
			return false
		}
		if errs.IsTerminal(err) {
			return false
		}
		return true
	}
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
	logger *logger.ZapLogger
}

// New creates a new retrier with the given configuration
func New(config Config, l *logger.ZapLogger) *Retrier {
	if config.RetryableFunc == nil {
		config.RetryableFunc = TransientOnly()
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	return &Retrier{
		config: config,
		logger: l,
	}
}

// NewWithDefaults creates a new retrier with default configuration
func NewWithDefaults(l *logger.ZapLogger) *Retrier {
	return New(DefaultConfig(), l)
}

// Execute executes the function with retry logic
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	err, _ := r.ExecuteWithMetrics(ctx, fn)
	return err
}

// ExecuteWithMetrics executes the function with retry logic and returns
// metrics describing the attempts, for telemetry.
func (r *Retrier) ExecuteWithMetrics(ctx context.Context, fn RetryableFunc) (error, Metrics) {
	metrics := Metrics{
		StartTime: time.Now(),
	}

	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		metrics.Attempts++

		select {
		case <-ctx.Done():
			metrics.EndTime = time.Now()
			return ctx.Err(), metrics
		default:
		}

		err := fn(ctx)
		if err == nil {
			metrics.EndTime = time.Now()
			metrics.Success = true
			if attempt > 0 {
				r.logger.Info("Function succeeded after retries",
					logger.Int("attempts", attempt+1),
					logger.Duration("total_duration", metrics.TotalDuration()))
			}
			return nil, metrics
		}

		lastErr = err

		if !r.config.RetryableFunc(err) {
			r.logger.Debug("Error is not retryable, stopping",
				logger.Err(err),
				logger.Int("attempt", attempt+1))
			metrics.EndTime = time.Now()
			return err, metrics
		}

		// Don't sleep after the last attempt
		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.calculateDelay(attempt)
		metrics.Delays = append(metrics.Delays, delay)

		r.logger.Debug("Function failed, retrying",
			logger.Err(err),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay),
			logger.Int("max_retries", r.config.MaxRetries))

		select {
		case <-ctx.Done():
			metrics.EndTime = time.Now()
			return ctx.Err(), metrics
		case <-time.After(delay):
		}
	}

	metrics.EndTime = time.Now()

	r.logger.Error("Function failed after all retries",
		logger.Err(lastErr),
		logger.Int("total_attempts", r.config.MaxRetries+1))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.config.MaxRetries+1, lastErr), metrics
}

// calculateDelay calculates the delay for the given attempt number
func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	if r.config.Jitter {
		// Up to 10% jitter
		delay += delay * 0.1 * rand.Float64()
	}

	return time.Duration(delay)
}

// Metrics holds metrics about one retry execution
type Metrics struct {
	StartTime time.Time
	EndTime   time.Time
	Attempts  int
	Success   bool
	Delays    []time.Duration
}

// TotalDuration returns the wall time spent across all attempts
func (m Metrics) TotalDuration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}
