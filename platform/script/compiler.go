package script

import "io"

// Compiler defines the interface for validating scripts before execution.
// It checks syntax and semantics, and may perform parsing, compilation,
// and optimization. A valid script is returned as ExecutableContent.
type Compiler interface {
	// Compile checks if a script is valid and returns it as executable content.
	// The returned ExecutableContent contains the validated and compiled
	// script ready for execution.
	Compile(scriptReader io.ReadCloser) (ExecutableContent, error)
}
