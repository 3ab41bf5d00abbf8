// Package interact implements the input state machine of the sketch tool:
// polyline sketching, color-pick selection, drag transforms, and the frame
// driven animations. Handlers run to completion and are not safe for
// concurrent use; callers serialize events.
package interact

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Button is a pointer button id as reported by the input surface.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button%d", int(b))
	}
}

// ParseButton maps a button name to its id.
func ParseButton(s string) (Button, error) {
	switch s {
	case "left":
		return ButtonLeft, nil
	case "middle":
		return ButtonMiddle, nil
	case "right":
		return ButtonRight, nil
	default:
		return 0, fmt.Errorf("unknown button %q", s)
	}
}

// Key codes handled by KeyDown.
const (
	KeyLeft  = 37
	KeyRight = 39
	KeyA     = 65
	KeyD     = 68
	KeyS     = 83
	KeyW     = 87
)

// KeyCode maps a key name to its code.
func KeyCode(name string) (int, error) {
	switch name {
	case "left":
		return KeyLeft, nil
	case "right":
		return KeyRight, nil
	case "a":
		return KeyA, nil
	case "d":
		return KeyD, nil
	case "s":
		return KeyS, nil
	case "w":
		return KeyW, nil
	default:
		return 0, fmt.Errorf("unknown key %q", name)
	}
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns width over height.
func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

// ToNDC converts a pointer position, relative to the top-left of the
// surface, to normalized device coordinates with +Y up.
func (v Viewport) ToNDC(x, y float64) v2.Vec {
	hw := float64(v.Width) / 2
	hh := float64(v.Height) / 2
	return v2.Vec{X: (x - hw) / hw, Y: (hh - y) / hh}
}

// ToPixel converts a pointer position to framebuffer coordinates with a
// bottom-left origin.
func (v Viewport) ToPixel(x, y float64) (int, int) {
	return int(x), v.Height - 1 - int(y)
}
