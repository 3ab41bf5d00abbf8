// Package engine runs scripted input sessions. A script is zygomys Lisp
// whose builtins feed pointer, key, and frame events to an interaction
// controller, so a whole sketch-and-manipulate session can be replayed
// without a window.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/tubesketch/pkg/interact"
	"github.com/chazu/tubesketch/pkg/render"
	"github.com/chazu/tubesketch/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of a script run.
type Result struct {
	// Status is the controller snapshot after the last expression.
	Status interact.Status
	// Events counts the input and frame events the script dispatched.
	Events int
	// Value is the printed value of the last expression.
	Value string
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// evaluation gets a fresh sandboxed environment.
type Engine struct {
	// NewController builds the controller used by Evaluate.
	NewController func() *interact.Controller

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an Engine whose Evaluate runs against a default scene
// drawn into a command recorder.
func NewEngine() *Engine {
	return &Engine{NewController: defaultController}
}

func defaultController() *interact.Controller {
	return interact.New(scene.New(scene.DefaultOptions()), render.NewRecorder(), interact.DefaultOptions())
}

// Evaluate runs source against a fresh controller.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	return e.Run(e.NewController(), source)
}

// Run executes source against c. Once Run returns the script can no longer
// reach c, even if a timed-out evaluation is still running.
func (e *Engine) Run(c *interact.Controller, source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	s := &session{ctrl: c}
	defer s.stop()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := s.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (s *session) evaluate(source string) (*Result, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return s.result(""), nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	v, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	value := ""
	if v != nil {
		value = v.SexpString(nil)
	}
	return s.result(value), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
