package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/chazu/tubesketch/pkg/interact"
	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/render"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites script source before passing it to zygomys.
// It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: mesh-stats -> mesh_stats
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. Line comments: ; and ;; become //.
//
// String literals are left untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value is a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// session guards a controller for the lifetime of one evaluation. After
// stop, builtins fail instead of touching the controller.
type session struct {
	mu      sync.Mutex
	ctrl    *interact.Controller
	stopped atomic.Bool
	events  int
}

// maxTicks bounds a single (tick n) call.
const maxTicks = 1 << 30

var errSessionClosed = errors.New("session closed")

// stop closes the session. Builtins hold mu for one event at a time, so
// the wait is at most a single event.
func (s *session) stop() {
	s.stopped.Store(true)
	s.mu.Lock()
	s.mu.Unlock()
}

func (s *session) do(fn func(c *interact.Controller) (zygo.Sexp, error)) (zygo.Sexp, error) {
	if s.stopped.Load() {
		return zygo.SexpNull, errSessionClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return zygo.SexpNull, errSessionClosed
	}
	return fn(s.ctrl)
}

// commandFlusher is implemented by facades that buffer draw commands.
type commandFlusher interface {
	Flush() []render.Command
}

// tick advances one animation frame and reports whether anything ran.
// Frames drawn by earlier ticks are dropped; only the latest one matters to
// a script.
func (s *session) tick() (bool, error) {
	ran := false
	_, err := s.do(func(c *interact.Controller) (zygo.Sexp, error) {
		if f, ok := c.Facade().(commandFlusher); ok {
			f.Flush()
		}
		ran = c.Tick()
		if ran {
			s.events++
		}
		return zygo.SexpNull, nil
	})
	return ran, err
}

// event runs fn as one dispatched input event.
func (s *session) event(fn func(c *interact.Controller)) (zygo.Sexp, error) {
	return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
		fn(c)
		s.events++
		return zygo.SexpNull, nil
	})
}

func (s *session) result(value string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return nil
	}
	return &Result{Status: s.ctrl.Status(), Events: s.events, Value: value}
}

// pixelStager is implemented by facades that answer pixel reads from a
// staged value, such as render.Recorder.
type pixelStager interface {
	StagePixel(rgba [4]uint8)
}

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

func position(fn string, pa kwArgs) (float64, float64, error) {
	if len(pa.positional) < 2 {
		return 0, 0, fmt.Errorf("%s requires x and y", fn)
	}
	x, err := toFloat64(pa.positional[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: x: %w", fn, err)
	}
	y, err := toFloat64(pa.positional[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: y: %w", fn, err)
	}
	return x, y, nil
}

func toButton(s zygo.Sexp) (interact.Button, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return interact.Button(v.Val), nil
	}
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	return interact.ParseButton(name)
}

func toKey(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	return interact.KeyCode(name)
}

// toHitAlpha maps a :hit keyword to the alpha byte a pixel read-back would
// return over that object.
func toHitAlpha(s zygo.Sexp) (uint8, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	switch name {
	case "mesh":
		return kernel.MeshAlpha, nil
	case "light":
		return kernel.LightAlpha, nil
	case "none":
		return 0, nil
	}
	return 0, fmt.Errorf("invalid hit %q, expected mesh, light, or none", name)
}

// pressArgs parses (fn x y :button b :hit h).
func pressArgs(fn string, args []zygo.Sexp, def interact.Button) (x, y float64, b interact.Button, hit *uint8, err error) {
	pa := parseArgs(args)
	x, y, err = position(fn, pa)
	if err != nil {
		return
	}
	b = def
	if v, ok := pa.kw["button"]; ok {
		if b, err = toButton(v); err != nil {
			err = fmt.Errorf("%s: button: %w", fn, err)
			return
		}
	}
	if v, ok := pa.kw["hit"]; ok {
		var a uint8
		if a, err = toHitAlpha(v); err != nil {
			err = fmt.Errorf("%s: hit: %w", fn, err)
			return
		}
		hit = &a
	}
	return
}

func press(c *interact.Controller, x, y float64, b interact.Button, hit *uint8) {
	if hit != nil {
		if st, ok := c.Facade().(pixelStager); ok {
			st.StagePixel([4]uint8{0, 0, 0, *hit})
		}
	}
	c.PointerDown(x, y, b)
}

func sexpInt(n int) zygo.Sexp { return &zygo.SexpInt{Val: int64(n)} }

func sexpStr(s string) zygo.Sexp { return &zygo.SexpStr{S: s} }

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// registerBuiltins installs the session builtins. Positions are surface
// pixels with the origin at the top-left, the same as pointer events.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// (press x y :button :left :hit :mesh)
	env.AddFunction("press", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, b, hit, err := pressArgs("press", args, interact.ButtonLeft)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.event(func(c *interact.Controller) { press(c, x, y, b, hit) })
	})

	// (release x y)
	env.AddFunction("release", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, err := position("release", parseArgs(args))
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.event(func(c *interact.Controller) { c.PointerUp(x, y) })
	})

	// (move x y)
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, err := position("move", parseArgs(args))
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.event(func(c *interact.Controller) { c.PointerMove(x, y) })
	})

	// (click x y) is press followed by release.
	env.AddFunction("click", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, b, hit, err := pressArgs("click", args, interact.ButtonLeft)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.event(func(c *interact.Controller) {
			press(c, x, y, b, hit)
			c.PointerUp(x, y)
		})
	})

	// (rclick x y) is a right-button click; while sketching it finalizes.
	env.AddFunction("rclick", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, b, hit, err := pressArgs("rclick", args, interact.ButtonRight)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.event(func(c *interact.Controller) {
			press(c, x, y, b, hit)
			c.PointerUp(x, y)
		})
	})

	// (scroll dy)
	env.AddFunction("scroll", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("scroll requires a delta")
		}
		dy, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scroll: %w", err)
		}
		return s.event(func(c *interact.Controller) { c.Scroll(dy) })
	})

	// (key :w) or (key 87)
	env.AddFunction("key", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("key requires a key name or code")
		}
		code, err := toKey(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("key: %w", err)
		}
		return s.event(func(c *interact.Controller) { c.KeyDown(code) })
	})

	// (toggle :spin) returns the new run state.
	env.AddFunction("toggle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("toggle requires an animation name")
		}
		kindName, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("toggle: %w", err)
		}
		kind, err := interact.ParseAnimation(kindName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("toggle: %w", err)
		}
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			s.events++
			return sexpStr(c.Toggle(kind).String()), nil
		})
	})

	// (tick) or (tick n) advances n frames and returns how many ran.
	env.AddFunction("tick", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n := 1
		if len(args) > 0 {
			f, err := toFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tick: %w", err)
			}
			if f < 0 || f > maxTicks {
				return zygo.SexpNull, fmt.Errorf("tick: count %g outside [0, %d]", f, maxTicks)
			}
			n = int(f)
		}
		ran := 0
		for ; ran < n; ran++ {
			more, err := s.tick()
			if err != nil {
				return zygo.SexpNull, err
			}
			if !more {
				break
			}
		}
		return sexpInt(ran), nil
	})

	// (finalize) sweeps the sketch. It returns false when there are too
	// few points, matching a right click.
	env.AddFunction("finalize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			if c.State() != interact.Sketching {
				return zygo.SexpNull, fmt.Errorf("finalize: sketch already finalized")
			}
			if err := c.Finalize(); err != nil {
				return &zygo.SexpBool{Val: false}, nil
			}
			return &zygo.SexpBool{Val: true}, nil
		})
	})

	env.AddFunction("reset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.event(func(c *interact.Controller) { c.Reset() })
	})

	env.AddFunction("state", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			return sexpStr(c.State().String()), nil
		})
	})

	env.AddFunction("selected", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			return sexpStr(c.Selected().String()), nil
		})
	})

	env.AddFunction("points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			return sexpInt(len(c.Points())), nil
		})
	})

	// (mesh-stats) returns (vertices triangles).
	env.AddFunction("mesh_stats", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			st := c.Status()
			return zygo.MakeList([]zygo.Sexp{sexpInt(st.Vertices), sexpInt(st.Triangles)}), nil
		})
	})

	// (shading) returns the current shading mode number.
	env.AddFunction("shading", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return s.do(func(c *interact.Controller) (zygo.Sexp, error) {
			return sexpInt(int(c.Scene().Shading)), nil
		})
	})
}
