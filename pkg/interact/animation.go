package interact

import (
	"fmt"
	"math"

	"github.com/chazu/tubesketch/pkg/scene"
)

// Animation names one of the toggleable frame animations.
type Animation int

const (
	AnimSpin Animation = iota
	AnimSquare
	AnimGravity
)

func (a Animation) String() string {
	switch a {
	case AnimSpin:
		return "spin"
	case AnimSquare:
		return "square"
	case AnimGravity:
		return "gravity"
	default:
		return fmt.Sprintf("Animation(%d)", int(a))
	}
}

// ParseAnimation maps an animation name to its id.
func ParseAnimation(s string) (Animation, error) {
	switch s {
	case "spin":
		return AnimSpin, nil
	case "square":
		return AnimSquare, nil
	case "gravity":
		return AnimGravity, nil
	default:
		return 0, fmt.Errorf("unknown animation %q", s)
	}
}

// AnimState is the run state of one animation.
type AnimState int

const (
	Stopped AnimState = iota
	Running
)

func (s AnimState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Per-tick constants. Advancement is a fixed amount per tick, not scaled by
// elapsed time.
const (
	SpinStep       = math.Pi / 100 // degrees of Y rotation per tick
	SquareStep     = 0.01
	SquareHalfSide = 0.25
	Gravity        = -0.0005
)

// Animator advances the spin, square, and gravity animations. Each runs
// independently; when several run at once their effects add up.
type Animator struct {
	spin    AnimState
	square  AnimState
	gravity AnimState

	// square path
	phase      int
	meshOld    [2]float64
	lightOld   [2]float64
	delX, delY float64

	velocity float64
}

// State reports the run state of an animation.
func (a *Animator) State(kind Animation) AnimState {
	switch kind {
	case AnimSpin:
		return a.spin
	case AnimSquare:
		return a.square
	case AnimGravity:
		return a.gravity
	}
	return Stopped
}

// Active reports whether any animation is running.
func (a *Animator) Active() bool {
	return a.spin == Running || a.square == Running || a.gravity == Running
}

// Velocity returns the gravity accumulator.
func (a *Animator) Velocity() float64 {
	return a.velocity
}

// Phase returns the current leg of the square path, 0 through 3.
func (a *Animator) Phase() int {
	return a.phase
}

func flip(s AnimState) AnimState {
	if s == Running {
		return Stopped
	}
	return Running
}

// Toggle starts or stops an animation. Stopping leaves the transforms where
// they are. Toggling the square in either direction re-anchors its path at
// the current positions; the leg it is on is kept. Stopping gravity zeroes
// the velocity.
func (a *Animator) Toggle(kind Animation, g *scene.Graph) AnimState {
	switch kind {
	case AnimSpin:
		a.spin = flip(a.spin)
		return a.spin
	case AnimSquare:
		a.square = flip(a.square)
		a.meshOld = [2]float64{float64(g.Mesh.Translate[0]), float64(g.Mesh.Translate[1])}
		a.lightOld = [2]float64{float64(g.Light.Translate[0]), float64(g.Light.Translate[1])}
		a.delX, a.delY = 0, 0
		return a.square
	case AnimGravity:
		a.gravity = flip(a.gravity)
		if a.gravity == Stopped {
			a.velocity = 0
		}
		return a.gravity
	}
	return Stopped
}

// Stop halts every animation and clears the gravity velocity.
func (a *Animator) Stop() {
	a.spin, a.square, a.gravity = Stopped, Stopped, Stopped
	a.velocity = 0
}

// Tick advances every running animation by one step and reports whether
// any ran.
func (a *Animator) Tick(g *scene.Graph) bool {
	if a.spin == Running {
		g.Mesh.Rotation[1] += SpinStep
		g.Light.Rotation[1] += SpinStep
	}
	if a.square == Running {
		a.tickSquare(g)
	}
	if a.gravity == Running {
		g.Mesh.Translate[1] += float32(a.velocity)
		a.velocity += Gravity
		g.Light.Translate[1] += float32(a.velocity)
		a.velocity += Gravity
	}
	return a.Active()
}

func (a *Animator) tickSquare(g *scene.Graph) {
	setX := func() {
		g.Mesh.Translate[0] = float32(a.meshOld[0] + a.delX)
		g.Light.Translate[0] = float32(a.lightOld[0] + a.delX)
	}
	setY := func() {
		g.Mesh.Translate[1] = float32(a.meshOld[1] + a.delY)
		g.Light.Translate[1] = float32(a.lightOld[1] + a.delY)
	}
	switch a.phase {
	case 0:
		setX()
		a.delX += SquareStep
		if a.delX >= SquareHalfSide {
			a.phase++
		}
	case 1:
		setY()
		a.delY += SquareStep
		if a.delY >= SquareHalfSide {
			a.phase++
		}
	case 2:
		setX()
		a.delX -= SquareStep
		if a.delX <= -SquareHalfSide {
			a.phase++
		}
	case 3:
		setY()
		a.delY -= SquareStep
		if a.delY <= -SquareHalfSide {
			a.phase = 0
		}
	}
}
