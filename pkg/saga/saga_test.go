package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/commercebridge/ondc-adapter/pkg/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaga_AllStepsSucceed(t *testing.T) {
	var executed []string

	s := saga.New("order-flow").
		AddStep(saga.Step{
			Name: "mutate",
			Run:  func(ctx context.Context) error { executed = append(executed, "mutate"); return nil },
		}).
		AddStep(saga.Step{
			Name: "deliver",
			Run:  func(ctx context.Context) error { executed = append(executed, "deliver"); return nil },
		})

	res, err := s.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, res.FailedStep)
	assert.Equal(t, []string{"mutate", "deliver"}, executed)
}

func TestSaga_SecondStepFails_CompensatesFirst(t *testing.T) {
	var executed []string

	s := saga.New("order-flow").
		AddStep(saga.Step{
			Name:       "mutate",
			Run:        func(ctx context.Context) error { executed = append(executed, "mutate"); return nil },
			Compensate: func(ctx context.Context) error { executed = append(executed, "rollback"); return nil },
		}).
		AddStep(saga.Step{
			Name: "deliver",
			Run:  func(ctx context.Context) error { return errors.New("delivery failed") },
			Compensate: func(ctx context.Context) error {
				// Must not run: the failing step itself is never compensated.
				executed = append(executed, "deliver-rollback")
				return nil
			},
		})

	res, err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, res.FailedStep)
	assert.NoError(t, res.CompensationErr)
	assert.Contains(t, err.Error(), "delivery failed")
	assert.Equal(t, []string{"mutate", "rollback"}, executed)
}

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var compensated []string

	s := saga.New("order-flow").
		AddStep(saga.Step{
			Name:       "a",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { compensated = append(compensated, "a"); return nil },
		}).
		AddStep(saga.Step{
			Name:       "b",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { compensated = append(compensated, "b"); return nil },
		}).
		AddStep(saga.Step{
			Name: "c",
			Run:  func(ctx context.Context) error { return errors.New("c failed") },
		})

	res, err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, res.FailedStep)
	assert.Equal(t, []string{"b", "a"}, compensated)
}

func TestSaga_CompensationFailureReported(t *testing.T) {
	s := saga.New("order-flow").
		AddStep(saga.Step{
			Name:       "mutate",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { return errors.New("rollback failed") },
		}).
		AddStep(saga.Step{
			Name: "deliver",
			Run:  func(ctx context.Context) error { return errors.New("delivery failed") },
		})

	res, err := s.Execute(context.Background())
	require.Error(t, err)
	require.Error(t, res.CompensationErr)
	assert.Contains(t, res.CompensationErr.Error(), "rollback failed")
}

func TestSaga_NoSteps(t *testing.T) {
	res, err := saga.New("empty").Execute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, -1, res.FailedStep)
}
