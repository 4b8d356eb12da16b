package script

// ExecutableContent represents validated script content that is ready for execution.
// It provides access to the script's source code and its compiled program.
// Implementations like [`aspect.Executable`](../../engines/aspect/compiler/executable.go)
// store the script content and the compiled instruction program for execution.
type ExecutableContent interface {
	// GetSource returns the original script content as a string.
	// This is the source code before any compilation or execution.
	GetSource() string

	// GetByteCode returns the compiled form of the script in an engine-specific format.
	// This bytecode object is asserted into the type the target engine requires. If the
	// target engine is unable to assert the bytecode into the correct type, it will return
	// an error at runtime, so the engine type and ByteCode must be compatible.
	GetByteCode() any
}
