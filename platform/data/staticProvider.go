package data

import (
	"context"
	"errors"
	"maps"
)

// ErrStaticProviderNoRuntimeUpdates is returned by StaticProvider.AddBindingsToContext,
// which rejects all runtime updates to its fixed binding set.
var ErrStaticProviderNoRuntimeUpdates = errors.New(
	"StaticProvider doesn't support adding bindings at runtime")

// StaticProvider holds a fixed set of variable bindings, set at creation time.
// It's useful for testing and for scripts whose seed variables are known in
// advance and don't need to be retrieved from the context.
type StaticProvider struct {
	bindings map[string]string
}

// NewStaticProvider creates a new StaticProvider with the given binding map.
func NewStaticProvider(bindings map[string]string) *StaticProvider {
	if bindings == nil {
		bindings = make(map[string]string)
	}
	return &StaticProvider{
		bindings: bindings,
	}
}

// GetBindings returns a copy of the static bindings, regardless of the context.
func (p *StaticProvider) GetBindings(_ context.Context) (map[string]string, error) {
	// Return a clone to prevent modification of the original
	return maps.Clone(p.bindings), nil
}

// AddBindingsToContext always returns ErrStaticProviderNoRuntimeUpdates.
func (p *StaticProvider) AddBindingsToContext(
	ctx context.Context,
	_ ...map[string]string,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}
