package evaluator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/robbyt/go-aspect/engines/aspect/compiler"
	"github.com/robbyt/go-aspect/engines/aspect/runtime"
	"github.com/robbyt/go-aspect/platform/constants"
	"github.com/robbyt/go-aspect/platform/data"
	"github.com/robbyt/go-aspect/platform/script"
	"github.com/robbyt/go-aspect/platform/script/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectingSink records forwarded diagnostics; call Close on the
// evaluator before reading.
type collectingSink struct {
	mu       sync.Mutex
	messages []string
}

func (c *collectingSink) deliver(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *collectingSink) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func testHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// newTestEvaluator compiles source through a mock loader so the exact
// bytes reach the compiler untouched.
func newTestEvaluator(
	t *testing.T,
	source string,
	provider data.Provider,
	opts ...Option,
) *Evaluator {
	t.Helper()
	handler := testHandler()

	comp, err := compiler.New(compiler.WithLogHandler(handler))
	require.NoError(t, err)

	if provider == nil {
		provider = data.NewStaticProvider(nil)
	}

	unit, err := script.NewExecutableUnit(
		handler,
		"test-unit",
		loader.NewMockLoaderWithContent([]byte(source)),
		comp,
		provider,
	)
	require.NoError(t, err)

	return New(handler, unit, opts...)
}

func requireResult(t *testing.T, resp any) Result {
	t.Helper()
	result, ok := resp.(Result)
	require.True(t, ok, "response should implement evaluator.Result")
	return result
}

func TestEvaluator_Eval_Output(t *testing.T) {
	t.Parallel()

	t.Run("declare then print resolves the variable", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(
			t,
			"declare foo1 as <Hello, world!>\nprint(\"@foo1\")",
			nil,
			WithOutput(&buf),
		)
		defer ev.Close()

		resp, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello, world!\n", buf.String())

		result := requireResult(t, resp)
		assert.Empty(t, result.Errors())
		assert.Equal(t, data.NONE, resp.Type())
		assert.Equal(t, "Hello, world!", result.Variables()["foo1"])
		assert.Equal(t, "test-unit", resp.GetScriptExeID())
	})

	t.Run("print writes literals", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, `print("plain")`, nil, WithOutput(&buf))
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "plain\n", buf.String())
	})

	t.Run("unknown reference prints the marker", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, `print("@ghost")`, nil, WithOutput(&buf))
		defer ev.Close()

		resp, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "invalid variable\n", buf.String())

		// Resolution failures are sentinel outcomes, not logged errors.
		assert.Empty(t, requireResult(t, resp).Errors())
	})

	t.Run("Test builtin confirms dispatch", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, "Test()", nil, WithOutput(&buf))
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.True(
			t,
			strings.HasPrefix(buf.String(), "Test function executed successfully at "),
		)
	})

	t.Run("unmatched call is silent", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, `ghost("x")`, nil, WithOutput(&buf))
		defer ev.Close()

		resp, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		assert.Empty(t, requireResult(t, resp).Errors())
	})

	t.Run("unknown directive is a noop", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, "some unknown directive", nil, WithOutput(&buf))
		defer ev.Close()

		resp, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		assert.Empty(t, requireResult(t, resp).Errors())
	})
}

func TestEvaluator_Eval_SyntaxError(t *testing.T) {
	t.Parallel()

	sink := &collectingSink{}
	var buf bytes.Buffer
	ev := newTestEvaluator(
		t,
		"if {5 == 5) [] the rest of this line",
		nil,
		WithOutput(&buf),
		WithSink(sink.deliver),
	)

	resp, err := ev.Eval(context.Background())
	require.NoError(t, err)
	require.NoError(t, ev.Close())

	result := requireResult(t, resp)
	require.Len(t, result.Errors(), 1)
	assert.Equal(t, runtime.SyntaxError, result.Errors()[0].Kind)
	assert.Equal(t, 1, result.Errors()[0].Line)

	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0], "SyntaxError")

	assert.Equal(t, data.ERROR, resp.Type())
	require.NotNil(t, resp.Interface())
	assert.Empty(t, buf.String())
}

func TestEvaluator_Eval_Truncation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ev := newTestEvaluator(
		t,
		"   \nprint(\"x\")\ndeclare a as <1>",
		nil,
		WithOutput(&buf),
	)
	defer ev.Close()

	resp, err := ev.Eval(context.Background())
	require.NoError(t, err)

	result := requireResult(t, resp)
	assert.Empty(t, buf.String())
	assert.Empty(t, result.Variables())
	assert.Empty(t, result.Errors())
}

func TestEvaluator_Eval_RuntimeError(t *testing.T) {
	t.Parallel()

	t.Run("function error is logged and later lines run", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, "boom()\nprint(\"after\")", nil, WithOutput(&buf))
		defer ev.Close()

		err := ev.Registry().Register(
			"boom",
			func(_ context.Context, _ []string, _ *runtime.Runtime) error {
				return errors.New("exploded")
			},
		)
		require.NoError(t, err)

		resp, evalErr := ev.Eval(context.Background())
		require.NoError(t, evalErr)

		result := requireResult(t, resp)
		require.Len(t, result.Errors(), 1)
		assert.Equal(t, runtime.RuntimeError, result.Errors()[0].Kind)
		assert.Contains(t, result.Errors()[0].Detail, "exploded")
		assert.Equal(t, "after\n", buf.String())
	})

	t.Run("function panic is recovered", func(t *testing.T) {
		var buf bytes.Buffer
		ev := newTestEvaluator(t, "panicky()\nprint(\"alive\")", nil, WithOutput(&buf))
		defer ev.Close()

		err := ev.Registry().Register(
			"panicky",
			func(_ context.Context, _ []string, _ *runtime.Runtime) error {
				panic("kaboom")
			},
		)
		require.NoError(t, err)

		resp, evalErr := ev.Eval(context.Background())
		require.NoError(t, evalErr)

		result := requireResult(t, resp)
		require.Len(t, result.Errors(), 1)
		assert.Equal(t, runtime.RuntimeError, result.Errors()[0].Kind)
		assert.Contains(t, result.Errors()[0].Detail, "panic")
		assert.Equal(t, "alive\n", buf.String())
	})
}

func TestEvaluator_Eval_Conditionals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     string
		wantOutput string
		wantVars   map[string]string
		wantErrors int
	}{
		{
			name:       "true gate runs the call action",
			source:     `if {5 == 5} [print("yes")]`,
			wantOutput: "yes\n",
		},
		{
			name:       "false gate is silent",
			source:     `if {5 < 3} [print("no")]`,
			wantOutput: "",
		},
		{
			name:     "true gate stores the declaration action",
			source:   "if {1 == 1} [declare a as <2>]",
			wantVars: map[string]string{"a": "2"},
		},
		{
			name:       "action matching no function is ignored",
			source:     `if {1 == 1} [ghost("x")]`,
			wantOutput: "",
		},
		{
			name:       "malformed comparison is silent",
			source:     `if {abc == 5} [print("x")]`,
			wantOutput: "",
		},
		{
			name:       "malformed action tail is silent",
			source:     "if {5 == 5} no brackets",
			wantOutput: "",
		},
		{
			name:       "malformed header is reported",
			source:     "if {5 == 5) []",
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ev := newTestEvaluator(t, tt.source, nil, WithOutput(&buf))
			defer ev.Close()

			resp, err := ev.Eval(context.Background())
			require.NoError(t, err)

			result := requireResult(t, resp)
			assert.Equal(t, tt.wantOutput, buf.String())
			assert.Len(t, result.Errors(), tt.wantErrors)
			for name, value := range tt.wantVars {
				assert.Equal(t, value, result.Variables()[name])
			}
		})
	}
}

func TestEvaluator_Eval_Bindings(t *testing.T) {
	t.Parallel()

	t.Run("static provider seeds variables", func(t *testing.T) {
		var buf bytes.Buffer
		provider := data.NewStaticProvider(map[string]string{"name": "Aspect"})
		ev := newTestEvaluator(t, `print("@name")`, provider, WithOutput(&buf))
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Aspect\n", buf.String())
	})

	t.Run("context provider carries per-call bindings", func(t *testing.T) {
		var buf bytes.Buffer
		provider := data.NewContextProvider(constants.EvalData)
		ev := newTestEvaluator(t, `print("@name")`, provider, WithOutput(&buf))
		defer ev.Close()

		ctx, err := ev.AddBindingsToContext(
			context.Background(),
			map[string]string{"name": "from context"},
		)
		require.NoError(t, err)

		_, err = ev.Eval(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from context\n", buf.String())
	})

	t.Run("script declarations shadow seeded bindings", func(t *testing.T) {
		var buf bytes.Buffer
		provider := data.NewStaticProvider(map[string]string{"name": "seeded"})
		ev := newTestEvaluator(
			t,
			"declare name as <local>\nprint(\"@name\")",
			provider,
			WithOutput(&buf),
		)
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "local\n", buf.String())
	})
}

func TestEvaluator_Eval_FreshStatePerRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ev := newTestEvaluator(t, `print("@foo")`, nil, WithOutput(&buf))
	defer ev.Close()

	// Variables never persist between evaluations, so both runs print the
	// invalid variable marker.
	for range 2 {
		_, err := ev.Eval(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, "invalid variable\ninvalid variable\n", buf.String())
}

func TestEvaluator_Eval_DiagnosticsOverride(t *testing.T) {
	t.Parallel()

	sink := &collectingSink{}
	ev := newTestEvaluator(
		t,
		"if {5 == 5) []",
		nil,
		WithOutput(&bytes.Buffer{}),
		WithSink(sink.deliver),
		WithDebugging(false),
	)

	// Debugging disabled: the error is logged but not forwarded.
	resp, err := ev.Eval(context.Background())
	require.NoError(t, err)
	require.Len(t, requireResult(t, resp).Errors(), 1)

	// A per-call override re-enables forwarding.
	ctx := runtime.WithDiagnostics(context.Background(), true)
	resp, err = ev.Eval(ctx)
	require.NoError(t, err)
	require.Len(t, requireResult(t, resp).Errors(), 1)

	require.NoError(t, ev.Close())
	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0], "SyntaxError")
}

func TestEvaluator_Eval_Cancellation(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t, `print("x")`, nil, WithOutput(&bytes.Buffer{}))
	defer ev.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ev.Eval(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted")
}

func TestEvaluator_Eval_HostErrors(t *testing.T) {
	t.Parallel()

	handler := testHandler()

	t.Run("nil executable unit", func(t *testing.T) {
		ev := New(handler, nil)
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executable unit is nil")
	})

	t.Run("nil content", func(t *testing.T) {
		ev := New(handler, &script.ExecutableUnit{ID: "u1"})
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content is nil")
	})

	t.Run("nil bytecode", func(t *testing.T) {
		content := &script.MockExecutableContent{}
		content.On("GetByteCode").Return(nil)

		ev := New(handler, &script.ExecutableUnit{ID: "u1", Content: content})
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bytecode is nil")
	})

	t.Run("wrong bytecode type", func(t *testing.T) {
		content := &script.MockExecutableContent{}
		content.On("GetByteCode").Return("not a program")

		ev := New(handler, &script.ExecutableUnit{ID: "u1", Content: content})
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid bytecode type")
	})

	t.Run("empty unit ID", func(t *testing.T) {
		content := &script.MockExecutableContent{}
		content.On("GetByteCode").Return("anything")

		ev := New(handler, &script.ExecutableUnit{Content: content})
		defer ev.Close()

		_, err := ev.Eval(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exeID is empty")
	})
}

func TestEvaluator_AddBindingsToContext_NoProvider(t *testing.T) {
	t.Parallel()

	ev := New(testHandler(), nil)
	defer ev.Close()

	_, err := ev.AddBindingsToContext(context.Background(), map[string]string{"k": "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data provider available")
}

func TestEvaluator_String(t *testing.T) {
	t.Parallel()

	ev := New(testHandler(), nil)
	defer ev.Close()
	assert.Equal(t, "aspect.Evaluator", ev.String())
}

func TestEvaluator_SharedRegistry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reg := runtime.NewRegistry(testHandler())
	require.NoError(t, reg.Register(
		"shared",
		func(_ context.Context, _ []string, rt *runtime.Runtime) error {
			_, err := rt.Output().Write([]byte("shared ran\n"))
			return err
		},
	))

	ev := newTestEvaluator(t, "shared()", nil, WithOutput(&buf), WithRegistry(reg))
	defer ev.Close()

	_, err := ev.Eval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shared ran\n", buf.String())
}
