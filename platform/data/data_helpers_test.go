package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Standard test binding sets used across all provider tests
var (
	// Simple bindings for testing basic functionality
	simpleBindings = map[string]string{
		"name":  "foo1",
		"count": "13",
		"flag":  "yes",
	}

	// Override bindings for testing later-wins merge behavior
	overrideBindings = map[string]string{
		"count": "99",
		"extra": "spare",
	}
)

// MockProvider is a testify mock implementation of Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetBindings(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	bindings, _ := args.Get(0).(map[string]string)
	return bindings, args.Error(1)
}

func (m *MockProvider) AddBindingsToContext(
	ctx context.Context,
	bindings ...map[string]string,
) (context.Context, error) {
	callArgs := make([]any, 0, len(bindings)+1)
	callArgs = append(callArgs, ctx)
	for _, b := range bindings {
		callArgs = append(callArgs, b)
	}
	args := m.Called(callArgs...)
	newCtx, _ := args.Get(0).(context.Context)
	return newCtx, args.Error(1)
}

// newMockErrorProvider creates a mock provider that returns errors
func newMockErrorProvider() *MockProvider {
	provider := new(MockProvider)
	provider.On("GetBindings", mock.Anything).Return(nil, assert.AnError)
	provider.On("AddBindingsToContext", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)
	return provider
}

// getBindingsCheckHelper checks if multiple calls to GetBindings return consistent results
func getBindingsCheckHelper(t *testing.T, provider Provider, ctx context.Context) {
	t.Helper()
	result1, err1 := provider.GetBindings(ctx)
	require.NoError(t, err1)

	result2, err2 := provider.GetBindings(ctx)
	require.NoError(t, err2)

	assert.Equal(t, result1, result2, "Multiple GetBindings calls should return consistent results")
}
