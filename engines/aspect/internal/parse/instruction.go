package parse

import "fmt"

// Kind tags an instruction with its dispatch class.
type Kind uint8

const (
	// KindNoOp marks a line that matched no dispatch rule.
	KindNoOp Kind = iota

	// KindDeclaration stores a variable in the run's variable table.
	KindDeclaration

	// KindCall invokes a registered function, resolved by prefix at run time.
	KindCall

	// KindConditional gates an action behind a pre-evaluated comparison.
	KindConditional
)

func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "noop"
	case KindDeclaration:
		return "declaration"
	case KindCall:
		return "call"
	case KindConditional:
		return "conditional"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Instruction is one classified source line. Only the fields for its Kind
// are populated.
type Instruction struct {
	Kind Kind

	// Line is the 1-based source line number.
	Line int

	// Raw is the original line text, kept for diagnostics.
	Raw string

	// Name and Value carry a KindDeclaration payload. Value is stored
	// verbatim, quotes included.
	Name  string
	Value string

	// CallText and Params carry a KindCall payload. CallText is the full
	// operator token so registered names can be prefix-matched at run time.
	CallText string
	Params   []string

	// Cond carries a KindConditional payload.
	Cond *Conditional
}

// Conditional is the pre-evaluated comparison gate of an "if" line.
type Conditional struct {
	// HeaderErr is set when no brace-delimited header could be extracted.
	// This is the only classification failure surfaced at run time.
	HeaderErr bool

	// Header is the text found between the braces.
	Header string

	// CondErr is set when Header is not a valid numeric comparison.
	CondErr bool

	// Result is the comparison outcome. Only meaningful when HeaderErr and
	// CondErr are both unset.
	Result bool

	// Action is the classified action tail. Nil when the gate is closed or
	// when the tail did not match the "{...} [...]" shape.
	Action *Action
}

// Action holds a conditional's action text with both possible readings. A
// registered call wins at run time; the declaration reading applies only
// when no registered name matches.
type Action struct {
	// Text is the content between the square brackets.
	Text string

	// IsCall is set when Text has a call shape.
	IsCall bool
	Params []string

	// IsDecl is set when Text parses as a declaration.
	IsDecl bool
	Name   string
	Value  string
}
