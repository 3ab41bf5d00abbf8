package interact

import (
	"errors"
	"fmt"

	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/render"
	"github.com/chazu/tubesketch/pkg/scene"
	"github.com/chazu/tubesketch/pkg/tessellate"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// State is the controller's top-level mode.
type State int

const (
	Sketching State = iota
	Idle
	MeshSelected
	LightSelected
)

func (s State) String() string {
	switch s {
	case Sketching:
		return "sketching"
	case Idle:
		return "idle"
	case MeshSelected:
		return "mesh-selected"
	case LightSelected:
		return "light-selected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selection is the picked object. The numeric values are uploaded to the
// shader as the selection highlight code.
type Selection int

const (
	SelectNone  Selection = 0
	SelectMesh  Selection = 1
	SelectLight Selection = 2
)

func (s Selection) String() string {
	switch s {
	case SelectMesh:
		return "mesh"
	case SelectLight:
		return "light"
	default:
		return "none"
	}
}

// SelectionFor maps a picked vertex tag to a selection.
func SelectionFor(t kernel.Tag) Selection {
	switch t {
	case kernel.TagMesh:
		return SelectMesh
	case kernel.TagLight:
		return SelectLight
	default:
		return SelectNone
	}
}

// DragFlag is the button held during a drag, offset by one so that zero
// means no button.
type DragFlag int

const (
	DragNone   DragFlag = 0
	DragPan    DragFlag = 1 // left: translate X/Y
	DragDepth  DragFlag = 2 // middle: translate Z, rotate Z
	DragRotate DragFlag = 3 // right: rotate X/Y
)

// Options configure a Controller.
type Options struct {
	Sweep         kernel.SweepOptions
	Viewport      Viewport
	ScrollDivisor float64
	ShearStep     float64
}

// DefaultOptions returns an 800x800 viewport with the default sweep.
func DefaultOptions() Options {
	return Options{
		Sweep:         kernel.DefaultSweepOptions(),
		Viewport:      Viewport{Width: 800, Height: 800},
		ScrollDivisor: 500,
		ShearStep:     0.1,
	}
}

// Controller owns the scene and routes input events to it, redrawing
// through the facade after every change.
type Controller struct {
	opts   Options
	scene  *scene.Graph
	facade render.Facade

	sketch    tessellate.Sketch
	finalized bool

	selected Selection
	drag     DragFlag
	lastPos  v2.Vec

	anim Animator
}

// New creates a controller in the sketching state.
func New(g *scene.Graph, f render.Facade, opts Options) *Controller {
	if opts.ScrollDivisor == 0 {
		opts.ScrollDivisor = 500
	}
	return &Controller{opts: opts, scene: g, facade: f}
}

// Scene returns the controlled scene.
func (c *Controller) Scene() *scene.Graph { return c.scene }

// Viewport returns the current surface size.
func (c *Controller) Viewport() Viewport { return c.opts.Viewport }

// Facade returns the draw target.
func (c *Controller) Facade() render.Facade { return c.facade }

// Animator returns the animation state.
func (c *Controller) Animator() *Animator { return &c.anim }

// Selected returns the current selection.
func (c *Controller) Selected() Selection { return c.selected }

// Drag returns the current drag flag.
func (c *Controller) Drag() DragFlag { return c.drag }

// Points returns the uncommitted sketch points.
func (c *Controller) Points() []v2.Vec { return c.sketch.Points() }

// State derives the top-level mode.
func (c *Controller) State() State {
	if !c.finalized {
		return Sketching
	}
	switch c.selected {
	case SelectMesh:
		return MeshSelected
	case SelectLight:
		return LightSelected
	default:
		return Idle
	}
}

// Resize updates the surface size used for coordinate conversion.
func (c *Controller) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("interact: invalid viewport %dx%d", w, h)
	}
	c.opts.Viewport = Viewport{Width: w, Height: h}
	c.Redraw()
	return nil
}

func (c *Controller) params() render.FrameParams {
	return render.FrameParams{Aspect: c.opts.Viewport.Aspect(), Selected: int(c.selected)}
}

// Redraw draws the current mode: the sketch preview while sketching, the
// scene afterwards.
func (c *Controller) Redraw() {
	if c.finalized {
		render.DrawScene(c.facade, c.scene, c.params())
		return
	}
	render.DrawSketch(c.facade, c.scene, c.params(), tessellate.Polyline(c.sketch.Points()), nil)
}

func (c *Controller) redrawSketch(cursor v2.Vec) {
	render.DrawSketch(c.facade, c.scene, c.params(), tessellate.Polyline(c.sketch.Points()), c.sketch.RubberBand(cursor))
}

// Finalize sweeps the sketch into the scene's tube and switches to
// manipulation. With fewer than two points it does nothing and returns
// tessellate.ErrTooFewPoints.
func (c *Controller) Finalize() error {
	if c.finalized {
		return errors.New("interact: sketch already finalized")
	}
	mesh, err := tessellate.Finalize(c.sketch.Points(), c.opts.Sweep)
	if err != nil {
		return err
	}
	c.scene.Tube = mesh
	c.sketch.Clear()
	c.finalized = true
	c.Redraw()
	return nil
}

// Reset discards the tube and any sketch, stops animations, and returns to
// sketching.
func (c *Controller) Reset() {
	c.anim.Stop()
	c.scene.Reset()
	c.sketch.Clear()
	c.finalized = false
	c.selected = SelectNone
	c.drag = DragNone
	c.lastPos = v2.Vec{}
	c.Redraw()
}

// PointerDown handles a button press at a surface position.
func (c *Controller) PointerDown(x, y float64, b Button) {
	pos := c.opts.Viewport.ToNDC(x, y)
	if !c.finalized {
		switch b {
		case ButtonLeft:
			c.sketch.Add(pos)
			c.Redraw()
		case ButtonRight:
			// Too few points is a silent no-op.
			_ = c.Finalize()
		}
		return
	}

	c.drag = DragFlag(b + 1)
	c.lastPos = pos
	px, py := c.opts.Viewport.ToPixel(x, y)
	c.selected = SelectionFor(render.Pick(c.facade, c.scene, c.params(), px, py))
	c.Redraw()
}

// PointerMove handles pointer motion.
func (c *Controller) PointerMove(x, y float64) {
	pos := c.opts.Viewport.ToNDC(x, y)
	if !c.finalized {
		if c.sketch.Len() > 0 {
			c.redrawSketch(pos)
		}
		return
	}
	if c.selected == SelectNone {
		return
	}
	d := pos.Sub(c.lastPos)
	c.applyDrag(c.scene.Transform(c.object()), float32(d.X), float32(d.Y))
	c.Redraw()
	c.lastPos = pos
}

func (c *Controller) applyDrag(ts *scene.TransformState, dx, dy float32) {
	switch c.drag {
	case DragPan:
		ts.TranslateBy(dx, dy, 0)
	case DragDepth:
		ts.TranslateBy(0, 0, dy)
		ts.RotateBy(0, 0, dx)
	case DragRotate:
		ts.RotateBy(dy, dx, 0)
	}
}

// PointerUp ends a drag. The selection is kept.
func (c *Controller) PointerUp(x, y float64) {
	if !c.finalized {
		return
	}
	c.lastPos = c.opts.Viewport.ToNDC(x, y)
	c.drag = DragNone
}

// Scroll changes the selected object's scale by dy over the scroll divisor.
func (c *Controller) Scroll(dy float64) {
	if !c.finalized {
		return
	}
	if c.selected != SelectNone {
		c.scene.Transform(c.object()).ScaleBy(float32(dy / c.opts.ScrollDivisor))
	}
	c.Redraw()
}

// KeyDown handles a key press. W/S and D/A shear the selected object;
// the arrow keys step the shading mode.
func (c *Controller) KeyDown(code int) {
	if c.selected != SelectNone {
		ts := c.scene.Transform(c.object())
		step := float32(c.opts.ShearStep)
		switch code {
		case KeyW:
			ts.ShearBy(step, 0)
		case KeyS:
			ts.ShearBy(-step, 0)
		case KeyD:
			ts.ShearBy(0, step)
		case KeyA:
			ts.ShearBy(0, -step)
		}
	}
	switch code {
	case KeyRight:
		c.scene.Shading = c.scene.Shading.Step(1)
	case KeyLeft:
		c.scene.Shading = c.scene.Shading.Step(-1)
	}
	c.Redraw()
}

// Toggle starts or stops an animation.
func (c *Controller) Toggle(kind Animation) AnimState {
	return c.anim.Toggle(kind, c.scene)
}

// Tick advances running animations by one frame and redraws when any ran.
// It reports whether another frame should be scheduled.
func (c *Controller) Tick() bool {
	if !c.anim.Tick(c.scene) {
		return false
	}
	c.Redraw()
	return true
}

func (c *Controller) object() scene.Object {
	if c.selected == SelectLight {
		return scene.ObjectLight
	}
	return scene.ObjectMesh
}
