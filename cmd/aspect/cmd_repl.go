package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	aspect "github.com/robbyt/go-aspect"
	"github.com/robbyt/go-aspect/engines/aspect/evaluator"
	"github.com/robbyt/go-aspect/engines/aspect/runtime"
	"github.com/spf13/cobra"
)

const replHelp = `Commands:
  :help, :h       show this help
  :vars           list variables declared so far
  :funcs          list registered functions
  :quit, :q       exit the REPL (Ctrl-D also works)

Anything else is evaluated as one line of Aspect source.`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Aspect session",
	Long: "Start an interactive session. Each entered line is appended to the\n" +
		"session script, so declared variables and registered functions stay\n" +
		"visible to later lines.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = cfg.withFlags()
		return runRepl(cmd.Context(), cfg)
	},
}

// replSession holds the accumulated script. Every entered line is evaluated
// by replaying the whole script with a shared registry, then printing only
// the output and errors the new line produced.
type replSession struct {
	handler   slog.Handler
	debugging bool
	registry  *runtime.Registry
	lines     []string
	seenOut   int
	seenErrs  int
	vars      map[string]string
}

func newReplSession(handler slog.Handler, debugging bool) *replSession {
	return &replSession{
		handler:   handler,
		debugging: debugging,
		registry:  runtime.NewRegistry(handler),
		vars:      map[string]string{},
	}
}

// eval replays the session script plus one candidate line. The line is kept
// only when compilation succeeds, so a rejected line cannot poison the
// session.
func (s *replSession) eval(ctx context.Context, line string) (string, []*runtime.Error, error) {
	candidate := append(slices.Clone(s.lines), line)
	source := strings.Join(candidate, "\n")

	var buf bytes.Buffer
	ev, err := aspect.FromBytes([]byte(source), s.handler,
		evaluator.WithOutput(&buf),
		evaluator.WithRegistry(s.registry),
		evaluator.WithDebugging(s.debugging),
	)
	if err != nil {
		return "", nil, err
	}
	defer ev.Close()

	resp, err := ev.Eval(ctx)
	if err != nil {
		return "", nil, err
	}
	result, ok := resp.(evaluator.Result)
	if !ok {
		return "", nil, fmt.Errorf("unexpected response type %T", resp)
	}

	s.lines = candidate
	s.vars = result.Variables()

	out := buf.String()
	if s.seenOut > len(out) {
		s.seenOut = len(out)
	}
	delta := out[s.seenOut:]
	s.seenOut = len(out)

	errs := result.Errors()
	if s.seenErrs > len(errs) {
		s.seenErrs = len(errs)
	}
	fresh := errs[s.seenErrs:]
	s.seenErrs = len(errs)

	return delta, fresh, nil
}

// command handles a ":" input. It reports whether the REPL should exit.
func (s *replSession) command(input string, st styles) bool {
	switch input {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Println(replHelp)
	case ":vars":
		if len(s.vars) == 0 {
			fmt.Println(st.info.Render("no variables declared"))
			return false
		}
		for _, name := range slices.Sorted(maps.Keys(s.vars)) {
			fmt.Println(st.label.Render(name) + " = " + st.value.Render(s.vars[name]))
		}
	case ":funcs":
		for _, name := range s.registry.Names() {
			fmt.Println(st.value.Render(name))
		}
	default:
		fmt.Println(st.info.Render(fmt.Sprintf("unknown command %s, try :help", input)))
	}
	return false
}

func runRepl(ctx context.Context, cfg config) error {
	st := newStyles(cfg.NoColor)
	handler := newHandler(cfg)
	session := newReplSession(handler, cfg.Debug)

	fmt.Println(st.banner.Render("Aspect " + appVersion + " REPL"))
	fmt.Println(st.info.Render(`Type ":help" for commands, ":quit" to exit.`))

	history, err := historyPath(cfg)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	defer ln.Close()

	if f, err := os.Open(history); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		input, err := ln.Prompt("aspect> ")
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if quit := session.command(trimmed, st); quit {
				return nil
			}
			continue
		}

		out, errs, err := session.eval(ctx, input)
		if err != nil {
			fmt.Println(st.err.Render(err.Error()))
			continue
		}
		fmt.Print(out)
		for _, e := range errs {
			fmt.Println(st.err.Render(e.Error()))
		}
	}
}
