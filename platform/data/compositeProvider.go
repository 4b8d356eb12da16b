package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// CompositeProvider combines multiple providers, with later providers
// overriding bindings from earlier ones in the chain.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider that queries given providers in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{
		providers: providers,
	}
}

// GetBindings retrieves bindings from all providers and merges them into a
// single map. Queries providers in sequence, with later providers overriding
// values from earlier ones for duplicate names.
// Returns error on first provider failure.
func (p *CompositeProvider) GetBindings(ctx context.Context) (map[string]string, error) {
	result := make(map[string]string)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		bindings, err := provider.GetBindings(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}

		maps.Copy(result, bindings)
	}

	return result, nil
}

// AddBindingsToContext distributes bindings to all providers in the chain.
// Continues through all providers even if some fail.
// StaticProvider errors are handled separately, since static bindings never
// accept runtime updates.
//
// Example:
//
//	ctx := context.Background()
//	staticProvider := NewStaticProvider(map[string]string{"mode": "batch"})
//	contextProvider := NewContextProvider(constants.EvalData)
//	composite := NewCompositeProvider(staticProvider, contextProvider)
//	ctx, err := composite.AddBindingsToContext(ctx, userBindings)
func (p *CompositeProvider) AddBindingsToContext(
	ctx context.Context,
	bindings ...map[string]string,
) (context.Context, error) {
	// Start with the original context
	finalCtx := ctx

	// Track errors and successes
	var errs []error
	var staticErrs []error
	successCount := 0
	totalCount := 0
	staticCount := 0

	// Try to add bindings to each provider
	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		// StaticProvider always returns an error on AddBindingsToContext
		_, isStaticProvider := provider.(*StaticProvider)

		// If it's not a StaticProvider, count it toward our total
		if !isStaticProvider {
			totalCount++
		} else {
			staticCount++
		}

		nextCtx, err := provider.AddBindingsToContext(finalCtx, bindings...)
		if err != nil {
			// Handle StaticProvider errors separately
			if isStaticProvider && errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
				staticErrs = append(staticErrs, fmt.Errorf("error from provider %d: %w", i, err))
				continue
			}

			// For other errors, collect them
			errs = append(errs, fmt.Errorf("error from provider %d: %w", i, err))
			continue
		}

		// Success - update the context and count
		finalCtx = nextCtx
		successCount++
	}

	// A chain of only StaticProviders has nowhere to store runtime bindings
	if staticCount > 0 && totalCount == 0 && len(staticErrs) > 0 {
		return ctx, errors.Join(staticErrs...)
	}

	// If all non-StaticProvider providers failed, return an error
	if totalCount > 0 && successCount == 0 && len(errs) > 0 {
		return ctx, errors.Join(errs...)
	}

	// Return the most updated context with no error
	return finalCtx, nil
}
