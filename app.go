package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/chazu/tubesketch/pkg/config"
	"github.com/chazu/tubesketch/pkg/engine"
	"github.com/chazu/tubesketch/pkg/interact"
	"github.com/chazu/tubesketch/pkg/render"
	"github.com/chazu/tubesketch/pkg/scene"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// meshColor is the display color reported for the swept tube.
const meshColor = "#FF0000"

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Every binding runs one input event to completion under mu, so events are
// never interleaved.
type App struct {
	ctx context.Context

	mu     sync.Mutex
	cfg    config.Config
	engine *engine.Engine
	rec    *render.Recorder
	ctrl   *interact.Controller
}

// FrameData is one batch of draw commands plus the state they reflect.
type FrameData struct {
	Commands  []render.Command `json:"commands"`
	Status    interact.Status  `json:"status"`
	Animating bool             `json:"animating"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is returned by RunScript.
type ScriptResult struct {
	Frame  FrameData       `json:"frame"`
	Errors []EvalErrorData `json:"errors"`
	Value  string          `json:"value"`
	Events int             `json:"events"`
}

// NewApp creates an App configured from the file named by TUBESKETCH_CONFIG.
// A bad config file is logged and the defaults are used.
func NewApp() *App {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Printf("config: %v; using defaults", err)
		cfg = config.Default()
	}
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates an App from an already validated config.
func NewAppWithConfig(cfg config.Config) *App {
	rec := render.NewRecorder()
	ctrl := interact.New(scene.New(cfg.SceneOptions()), rec, cfg.ControllerOptions())
	a := &App{
		cfg:    cfg,
		engine: engine.NewEngine(),
		rec:    rec,
		ctrl:   ctrl,
	}
	a.engine.NewController = func() *interact.Controller {
		return interact.New(scene.New(cfg.SceneOptions()), render.NewRecorder(), cfg.ControllerOptions())
	}
	ctrl.Redraw()
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// frame flushes the recorded commands. Callers hold mu.
func (a *App) frame() FrameData {
	fd := FrameData{
		Commands:  a.rec.Flush(),
		Status:    a.ctrl.Status(),
		Animating: a.ctrl.Animator().Active(),
	}
	if fd.Commands == nil {
		fd.Commands = []render.Command{}
	}
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "status", fd.Status)
	}
	return fd
}

// Redraw returns a full redraw of the current state.
func (a *App) Redraw() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Redraw()
	return a.frame()
}

// PointerDown handles a button press at surface pixel (x, y). pixel is the
// RGBA value the frontend read back under the cursor; it answers the pick.
func (a *App) PointerDown(x, y float64, button int, pixel []int) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(pixel) == 4 {
		var px [4]uint8
		for i, v := range pixel {
			px[i] = uint8(v)
		}
		a.rec.StagePixel(px)
	}
	a.ctrl.PointerDown(x, y, interact.Button(button))
	return a.frame()
}

// PointerMove handles pointer motion.
func (a *App) PointerMove(x, y float64) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.PointerMove(x, y)
	return a.frame()
}

// PointerUp handles a button release.
func (a *App) PointerUp(x, y float64) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.PointerUp(x, y)
	return a.frame()
}

// Scroll handles a wheel delta.
func (a *App) Scroll(dy float64) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Scroll(dy)
	return a.frame()
}

// KeyDown handles a key press by key code.
func (a *App) KeyDown(code int) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.KeyDown(code)
	return a.frame()
}

// Resize updates the drawing surface size.
func (a *App) Resize(width, height int) (FrameData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ctrl.Resize(width, height); err != nil {
		return FrameData{}, err
	}
	return a.frame(), nil
}

// ToggleAnimation starts or stops the named animation (spin, square,
// gravity). The frontend keeps calling Frame while Animating is set.
func (a *App) ToggleAnimation(name string) (FrameData, error) {
	kind, err := interact.ParseAnimation(name)
	if err != nil {
		return FrameData{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Toggle(kind)
	return a.frame(), nil
}

// Frame advances running animations by one step. It is the frontend's
// per-frame callback.
func (a *App) Frame() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Tick()
	return a.frame()
}

// SetAmbient sets the ambient color from 0..255 channels.
func (a *App) SetAmbient(r, g, b int) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Scene().SetAmbient(r, g, b)
	a.ctrl.Redraw()
	return a.frame()
}

// SetSpecular sets the specular color from 0..255 channels.
func (a *App) SetSpecular(r, g, b int) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Scene().SetSpecular(r, g, b)
	a.ctrl.Redraw()
	return a.frame()
}

// SetSpecularConstant sets the specular exponent.
func (a *App) SetSpecularConstant(n float64) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Scene().SetSpecularConstant(float32(n))
	a.ctrl.Redraw()
	return a.frame()
}

// Reset discards the tube and returns to sketching.
func (a *App) Reset() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Reset()
	return a.frame()
}

// DebugNormals redraws the scene with the tube normals overlaid.
func (a *App) DebugNormals(length float64) (FrameData, error) {
	if length <= 0 {
		return FrameData{}, fmt.Errorf("normal length must be positive, got %g", length)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctrl.Redraw()
	render.DrawNormals(a.rec, a.ctrl.Scene(), length)
	return a.frame(), nil
}

// Mesh returns the current tube geometry, or an empty mesh while sketching.
func (a *App) Mesh() MeshData {
	a.mu.Lock()
	defer a.mu.Unlock()
	md := MeshData{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
		PartName: "tube",
		Color:    meshColor,
	}
	g := a.ctrl.Scene()
	if !g.HasTube() {
		return md
	}
	md.Vertices = g.Tube.Positions()
	md.Normals = g.Tube.Normals()
	md.Indices = g.Tube.Indices
	md.PartName = g.Tube.Name
	return md
}

// RunScript plays a script against the live session. Eval errors are
// reported in the result; fatal errors (timeout, panic) are logged and
// reported the same way.
func (a *App) RunScript(source string) ScriptResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := ScriptResult{Errors: []EvalErrorData{}}

	res, evalErrs, err := a.engine.Run(a.ctrl, source)
	switch {
	case err != nil:
		log.Printf("RunScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
	case len(evalErrs) > 0:
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
	default:
		result.Value = res.Value
		result.Events = res.Events
	}

	a.ctrl.Redraw()
	result.Frame = a.frame()
	return result
}
