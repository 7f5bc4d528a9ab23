package saga

import (
	"context"
	"errors"
	"fmt"
)

// Step is a unit of work with an optional compensating action. Compensate is
// invoked only for steps whose Run completed before a later step failed.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Result reports how an execution ended.
type Result struct {
	// FailedStep is the index of the step that failed, or -1 on success.
	FailedStep int
	// CompensationErr collects failures of the compensating actions. It is
	// informational: compensation is best effort and never retried.
	CompensationErr error
}

// Saga runs steps in order and compensates completed steps, in reverse, when
// one fails.
type Saga struct {
	name  string
	steps []Step
}

func New(name string) *Saga {
	return &Saga{name: name}
}

func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs all steps sequentially. On failure it compensates previously
// completed steps in reverse order and returns the failing step's error.
func (s *Saga) Execute(ctx context.Context) (Result, error) {
	completed := make([]int, 0, len(s.steps))

	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			compErr := s.compensate(ctx, completed)
			return Result{FailedStep: i, CompensationErr: compErr},
				fmt.Errorf("saga %s: step %q failed: %w", s.name, step.Name, err)
		}
		completed = append(completed, i)
	}

	return Result{FailedStep: -1}, nil
}

func (s *Saga) compensate(ctx context.Context, completed []int) error {
	var errs []error
	for i := len(completed) - 1; i >= 0; i-- {
		step := s.steps[completed[i]]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("compensate step %q: %w", step.Name, err))
		}
	}
	return errors.Join(errs...)
}
