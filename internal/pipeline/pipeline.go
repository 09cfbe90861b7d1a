package pipeline

import (
	"context"
	"log/slog"

	"github.com/dcss-tools/morguelib/internal/model"
)

// Step is one stage of a classification run. Steps execute in
// sequence, each mutating the shared run state.
type Step interface {
	// Do executes the step. An error returned here is critical;
	// per-URL problems are recorded in the run instead.
	Do(ctx context.Context, run *model.ParseRun) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline executes an ordered list of steps against one ParseRun.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after one fails.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps executing steps after a failure. The
// default is to stop, because a failed early step usually leaves
// nothing for the later ones to work on.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline. Add steps with AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs the steps in order. Cancellation is checked between
// steps; long-running steps also watch the context themselves.
func (p *Pipeline) Execute(ctx context.Context, run *model.ParseRun) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled", "step", step.Name(), "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step", "step", step.Name())

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed", "step", step.Name())
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}
