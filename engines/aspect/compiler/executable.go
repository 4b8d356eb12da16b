package compiler

import (
	"github.com/robbyt/go-aspect/engines/aspect/internal/parse"
)

// Executable implements script.ExecutableContent for Aspect programs.
type Executable struct {
	scriptBodyBytes []byte
	program         *parse.Program
}

// NewExecutable creates a new Executable instance
func NewExecutable(scriptBodyBytes []byte, program *parse.Program) *Executable {
	if len(scriptBodyBytes) == 0 || program == nil {
		return nil
	}

	return &Executable{
		scriptBodyBytes: scriptBodyBytes,
		program:         program,
	}
}

// GetSource returns the original script content
func (e *Executable) GetSource() string {
	return string(e.scriptBodyBytes)
}

// GetByteCode returns the classified instruction program as a generic
// interface
func (e *Executable) GetByteCode() any {
	return e.program
}

// InstructionCount returns the number of classified instructions in the
// program.
func (e *Executable) InstructionCount() int {
	return len(e.program.Instructions)
}
