package aspect

import (
	"fmt"
	"log/slog"
	"path/filepath"

	engine "github.com/robbyt/go-aspect/engines/aspect"
	"github.com/robbyt/go-aspect/engines/aspect/evaluator"
	"github.com/robbyt/go-aspect/platform/script/loader"
)

// FromString creates an Aspect evaluator from a script string. Variables can be
// supplied per-run with the AddBindingsToContext method on the returned evaluator.
func FromString(
	content string,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoader(logHandler, l, opts...)
}

// FromStringWithData creates an Aspect evaluator from a script string, with
// staticData seeded as variables into every run.
func FromStringWithData(
	content string,
	staticData map[string]string,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoaderWithData(logHandler, l, staticData, opts...)
}

// FromBytes creates an Aspect evaluator from raw script bytes. Unlike FromString,
// the bytes reach the compiler untouched, so leading whitespace survives.
func FromBytes(
	content []byte,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	l, err := loader.NewFromBytes(content)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoader(logHandler, l, opts...)
}

// FromBytesWithData creates an Aspect evaluator from raw script bytes, with
// staticData seeded as variables into every run.
func FromBytesWithData(
	content []byte,
	staticData map[string]string,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	l, err := loader.NewFromBytes(content)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoaderWithData(logHandler, l, staticData, opts...)
}

// FromFile creates an Aspect evaluator from a script file on disk.
func FromFile(
	filePath string,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path %q: %w", filePath, err)
	}

	l, err := loader.NewFromDisk(absPath)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoader(logHandler, l, opts...)
}

// FromFileWithData creates an Aspect evaluator from a script file on disk, with
// staticData seeded as variables into every run.
func FromFileWithData(
	filePath string,
	staticData map[string]string,
	logHandler slog.Handler,
	opts ...evaluator.Option,
) (*evaluator.Evaluator, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path %q: %w", filePath, err)
	}

	l, err := loader.NewFromDisk(absPath)
	if err != nil {
		return nil, err
	}

	return engine.FromAspectLoaderWithData(logHandler, l, staticData, opts...)
}
