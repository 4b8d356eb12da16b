package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("classifies each line kind", func(t *testing.T) {
		source := "declare foo1 as <Hello, world!>\n" +
			"print(\"@foo1\")\n" +
			"if {5 == 5} [Test()]\n" +
			"unknown directive\n"

		prog := Parse(source)
		require.Zero(t, prog.TruncatedAt)
		require.Len(t, prog.Instructions, 4)

		decl := prog.Instructions[0]
		assert.Equal(t, KindDeclaration, decl.Kind)
		assert.Equal(t, 1, decl.Line)
		assert.Equal(t, "foo1", decl.Name)
		assert.Equal(t, "Hello, world!", decl.Value)

		call := prog.Instructions[1]
		assert.Equal(t, KindCall, call.Kind)
		assert.Equal(t, `print("@foo1")`, call.CallText)
		assert.Equal(t, []string{"@foo1"}, call.Params)

		cond := prog.Instructions[2]
		assert.Equal(t, KindConditional, cond.Kind)
		require.NotNil(t, cond.Cond)
		assert.False(t, cond.Cond.HeaderErr)
		assert.True(t, cond.Cond.Result)
		require.NotNil(t, cond.Cond.Action)
		assert.True(t, cond.Cond.Action.IsCall)
		assert.Equal(t, "Test()", cond.Cond.Action.Text)

		assert.Equal(t, KindNoOp, prog.Instructions[3].Kind)
	})

	t.Run("declaration value kept verbatim", func(t *testing.T) {
		prog := Parse(`declare greeting as <"Hi there">`)
		require.Len(t, prog.Instructions, 1)
		assert.Equal(t, `"Hi there"`, prog.Instructions[0].Value)
	})

	t.Run("failed declaration becomes noop", func(t *testing.T) {
		prog := Parse("declare foo as 1")
		require.Len(t, prog.Instructions, 1)
		assert.Equal(t, KindNoOp, prog.Instructions[0].Kind)
	})

	t.Run("call shape wins over declare-like operator", func(t *testing.T) {
		prog := Parse(`declare("x")`)
		require.Len(t, prog.Instructions, 1)
		assert.Equal(t, KindCall, prog.Instructions[0].Kind)
		assert.Equal(t, `declare("x")`, prog.Instructions[0].CallText)
	})

	t.Run("call shape requires parens in the operator", func(t *testing.T) {
		// A space before the parens splits the parens into the rest.
		prog := Parse(`print ("@foo1")`)
		require.Len(t, prog.Instructions, 1)
		assert.Equal(t, KindNoOp, prog.Instructions[0].Kind)
	})

	t.Run("unsplittable line truncates the whole source", func(t *testing.T) {
		prog := Parse("   \nprint(\"x\")\ndeclare foo as <1>")
		assert.Equal(t, 1, prog.TruncatedAt)
		assert.Empty(t, prog.Instructions)
	})

	t.Run("mid-source truncation keeps earlier lines", func(t *testing.T) {
		prog := Parse("declare foo as <1>\n \nprint(\"@foo\")")
		assert.Equal(t, 2, prog.TruncatedAt)
		require.Len(t, prog.Instructions, 1)
		assert.Equal(t, KindDeclaration, prog.Instructions[0].Kind)
	})

	t.Run("conditional outcomes", func(t *testing.T) {
		t.Run("malformed header", func(t *testing.T) {
			prog := Parse("if {5 == 5) [] the rest of this line")
			require.Len(t, prog.Instructions, 1)
			cond := prog.Instructions[0].Cond
			require.NotNil(t, cond)
			assert.True(t, cond.HeaderErr)
			assert.Nil(t, cond.Action)
		})

		t.Run("malformed comparison is silent", func(t *testing.T) {
			prog := Parse("if {abc == 5} [Test()]")
			require.Len(t, prog.Instructions, 1)
			cond := prog.Instructions[0].Cond
			require.NotNil(t, cond)
			assert.False(t, cond.HeaderErr)
			assert.True(t, cond.CondErr)
			assert.Nil(t, cond.Action)
		})

		t.Run("false gate has no action", func(t *testing.T) {
			prog := Parse("if {5 < 3} [Test()]")
			require.Len(t, prog.Instructions, 1)
			cond := prog.Instructions[0].Cond
			require.NotNil(t, cond)
			assert.False(t, cond.Result)
			assert.Nil(t, cond.Action)
		})

		t.Run("true gate with malformed tail", func(t *testing.T) {
			prog := Parse("if {5 == 5} no brackets here")
			require.Len(t, prog.Instructions, 1)
			cond := prog.Instructions[0].Cond
			require.NotNil(t, cond)
			assert.True(t, cond.Result)
			assert.Nil(t, cond.Action)
		})

		t.Run("action with declaration reading", func(t *testing.T) {
			prog := Parse("if {1 == 1} [declare a as <2>]")
			require.Len(t, prog.Instructions, 1)
			action := prog.Instructions[0].Cond.Action
			require.NotNil(t, action)
			assert.False(t, action.IsCall)
			assert.True(t, action.IsDecl)
			assert.Equal(t, "a", action.Name)
			assert.Equal(t, "2", action.Value)
		})

		t.Run("action with both readings", func(t *testing.T) {
			prog := Parse(`if {1 == 1} [declare a as <f("x")>]`)
			require.Len(t, prog.Instructions, 1)
			action := prog.Instructions[0].Cond.Action
			require.NotNil(t, action)
			assert.True(t, action.IsCall)
			assert.Equal(t, []string{"x"}, action.Params)
			assert.True(t, action.IsDecl)
			assert.Equal(t, "a", action.Name)
		})

		t.Run("action with neither reading", func(t *testing.T) {
			prog := Parse("if {1 == 1} [nothing useful]")
			require.Len(t, prog.Instructions, 1)
			action := prog.Instructions[0].Cond.Action
			require.NotNil(t, action)
			assert.False(t, action.IsCall)
			assert.False(t, action.IsDecl)
			assert.Equal(t, "nothing useful", action.Text)
		})
	})

	t.Run("empty source", func(t *testing.T) {
		prog := Parse("")
		assert.Zero(t, prog.TruncatedAt)
		assert.Empty(t, prog.Instructions)
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "noop", KindNoOp.String())
	assert.Equal(t, "declaration", KindDeclaration.String())
	assert.Equal(t, "call", KindCall.String())
	assert.Equal(t, "conditional", KindConditional.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
