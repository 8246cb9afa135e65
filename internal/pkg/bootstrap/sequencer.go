package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
)

// Stage is one unit of startup work. Critical stages run first, one after
// another; the rest run afterwards in parallel with each other.
type Stage struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) error
}

// StageError records one stage failure without aborting startup
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Sequencer runs the startup stages and signals completion exactly once,
// no matter which stages fail or hang. A hung subsystem must never keep the
// application from reaching a usable state.
type Sequencer struct {
	cfg          models.BootstrapConfig
	logger       *logger.ZapLogger
	sink         telemetry.Sink
	onStageError func(StageError)

	once sync.Once
	done chan struct{}

	mu       sync.Mutex
	failures []StageError
}

// NewSequencer creates a startup sequencer. onStageError may be nil.
func NewSequencer(cfg models.BootstrapConfig, l *logger.ZapLogger, sink telemetry.Sink, onStageError func(StageError)) *Sequencer {
	return &Sequencer{
		cfg:          cfg,
		logger:       l,
		sink:         sink,
		onStageError: onStageError,
		done:         make(chan struct{}),
	}
}

// Done is closed once startup is complete, successful or not
func (s *Sequencer) Done() <-chan struct{} {
	return s.done
}

// Failures returns the stage errors collected so far
func (s *Sequencer) Failures() []StageError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StageError, len(s.failures))
	copy(out, s.failures)
	return out
}

// Run executes all stages: critical ones sequentially under the critical
// timeout, then the rest in parallel under the non-critical timeout. It
// returns the collected failures after signaling completion.
func (s *Sequencer) Run(ctx context.Context, stages []Stage) []StageError {
	var critical, best []Stage
	for _, st := range stages {
		if st.Critical {
			critical = append(critical, st)
		} else {
			best = append(best, st)
		}
	}

	criticalCtx, cancelCritical := context.WithTimeout(ctx, s.cfg.CriticalTimeout)
	for _, st := range critical {
		s.runStage(criticalCtx, st)
	}
	cancelCritical()

	bestCtx, cancelBest := context.WithTimeout(ctx, s.cfg.NonCriticalTimeout)
	var wg sync.WaitGroup
	for _, st := range best {
		wg.Add(1)
		go func(st Stage) {
			defer wg.Done()
			s.runStage(bestCtx, st)
		}(st)
	}

	// Wait for the parallel stages, but no longer than their budget: a
	// stage that ignores its context must not delay the completion signal.
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-bestCtx.Done():
	}
	cancelBest()

	s.once.Do(func() {
		s.logger.Info("initialization complete",
			logger.Int("stages", len(stages)),
			logger.Int("failures", len(s.Failures())))
		close(s.done)
	})

	return s.Failures()
}

// runStage runs one stage in its own goroutine so a hung stage only burns a
// goroutine, never the sequencer.
func (s *Sequencer) runStage(ctx context.Context, st Stage) {
	start := time.Now()
	result := make(chan error, 1)
	go func() {
		result <- st.Run(ctx)
	}()

	var err error
	select {
	case err = <-result:
	case <-ctx.Done():
		err = fmt.Errorf("timed out: %w", ctx.Err())
	}

	if err != nil {
		s.recordFailure(StageError{Stage: st.Name, Err: err})
		return
	}
	s.logger.Info("stage completed",
		logger.String("stage", st.Name),
		logger.Bool("critical", st.Critical),
		logger.Duration("took", time.Since(start)))
}

func (s *Sequencer) recordFailure(failure StageError) {
	s.mu.Lock()
	s.failures = append(s.failures, failure)
	s.mu.Unlock()

	s.logger.Error("stage failed",
		logger.String("stage", failure.Stage),
		logger.Err(failure.Err))
	telemetry.Error(s.sink, "bootstrap_stage_failed", failure.Err, map[string]string{
		"stage": failure.Stage,
	})
	if s.onStageError != nil {
		s.onStageError(failure)
	}
}
