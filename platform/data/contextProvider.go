package data

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/robbyt/go-aspect/platform/constants"
)

// ContextProvider retrieves and stores variable bindings in the context using
// a specified key.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
// The context key determines where bindings are stored in the context object.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetBindings extracts bindings from the context using the configured context key.
func (p *ContextProvider) GetBindings(ctx context.Context) (map[string]string, error) {
	if p.contextKey == "" {
		return nil, fmt.Errorf("context key is empty")
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]string), nil
	}

	b, ok := value.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("invalid input data type: expected map[string]string, got %T", value)
	}

	return b, nil
}

// AddBindingsToContext merges the provided binding maps into the context.
// Later values override earlier ones for duplicate names, and bindings already
// stored under the key are preserved unless overridden.
func (p *ContextProvider) AddBindingsToContext(
	ctx context.Context,
	bindings ...map[string]string,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("context key is empty")
	}

	var errz []error
	toStore := make(map[string]string)

	if existing := ctx.Value(p.contextKey); existing != nil {
		if existingMap, ok := existing.(map[string]string); ok {
			maps.Copy(toStore, existingMap)
		}
	}

	for _, bindingMap := range bindings {
		if bindingMap == nil {
			continue
		}

		for name, value := range bindingMap {
			if name == "" {
				errz = append(errz, fmt.Errorf("empty variable names are not allowed"))
				continue
			}
			toStore[name] = value
		}
	}

	newCtx := context.WithValue(ctx, p.contextKey, toStore)
	return newCtx, errors.Join(errz...)
}
