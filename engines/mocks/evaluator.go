package mocks

import (
	"context"

	"github.com/robbyt/go-aspect/platform"
	"github.com/stretchr/testify/mock"
)

// Evaluator is a mock implementation of platform.Evaluator for testing purposes.
type Evaluator struct {
	mock.Mock
}

// Eval is a mock implementation of the Eval method.
func (m *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(platform.EvaluatorResponse), args.Error(1)
}

// AddBindingsToContext is a mock implementation of the AddBindingsToContext method.
func (m *Evaluator) AddBindingsToContext(
	ctx context.Context,
	bindings ...map[string]string,
) (context.Context, error) {
	args := m.Called(ctx, bindings)
	return args.Get(0).(context.Context), args.Error(1)
}
