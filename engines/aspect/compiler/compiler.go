package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/robbyt/go-aspect/engines/aspect/internal/parse"
	"github.com/robbyt/go-aspect/platform/script"
)

// Compiler classifies Aspect source into an executable instruction program.
type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Compiler instance with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	// Initialize compiler with empty values
	c := &Compiler{}

	// Apply defaults
	c.applyDefaults()

	// Apply all options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	// Validate the configuration
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	// Set up logging based on provided options
	c.setupLogger()

	return c, nil
}

func (c *Compiler) String() string {
	return "aspect.Compiler"
}

// Compile turns the provided script content into a classified instruction
// program.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	scriptBodyBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	err = scriptReader.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.compile(scriptBodyBytes)
}

func (c *Compiler) compile(scriptBodyBytes []byte) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(scriptBodyBytes) == 0 {
		return nil, ErrContentNil
	}
	scriptContent := string(scriptBodyBytes)

	// Check for empty script
	if strings.TrimSpace(scriptContent) == "" {
		logger.Warn("Empty script content")
		return nil, ErrNoInstructions
	}

	program := parse.Parse(scriptContent)

	// An early segmentation stop is not a compile failure; the surviving
	// instructions still form a valid program, possibly an empty one.
	if program.TruncatedAt > 0 {
		logger.Warn("Segmentation stopped early, discarding later lines",
			"line", program.TruncatedAt)
	}
	logger.Debug("Classification successful",
		"instructionCount", len(program.Instructions))

	aspectExec := NewExecutable(scriptBodyBytes, program)
	if aspectExec == nil {
		logger.Warn("Failed to create Executable from program")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation completed")
	return aspectExec, nil
}
