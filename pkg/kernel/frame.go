package kernel

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FrameMode selects how a segment's rotation angle is derived.
type FrameMode int

const (
	// FrameAtan2 uses the two-argument arctangent. Local +X always runs
	// from the segment's first point to its second and local +Y is the
	// left-hand perpendicular, so ring indices line up across joints.
	FrameAtan2 FrameMode = iota

	// FrameLegacy uses the single-argument arctangent of dy/dx and flips
	// the frame by pi when the segment runs right to left. The flip makes
	// it agree with FrameAtan2 except on vertical segments, which come out
	// reversed, and zero-length segments, which produce NaN.
	FrameLegacy
)

func (m FrameMode) String() string {
	switch m {
	case FrameAtan2:
		return "atan2"
	case FrameLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseFrameMode converts a configuration string to a FrameMode.
func ParseFrameMode(s string) (FrameMode, error) {
	switch s {
	case "", "atan2":
		return FrameAtan2, nil
	case "legacy":
		return FrameLegacy, nil
	}
	return 0, fmt.Errorf("unknown frame mode %q", s)
}

// SegmentFrame is the affine placement of a unit cylinder segment along a
// sketched edge. In local coordinates the segment spans x in
// [-Length/2, Length/2] around the origin; Affine maps that onto the edge.
type SegmentFrame struct {
	Affine sdf.M44
	Length float64
	Angle  float64 // rotation about Z, radians
}

// BuildSegmentFrame composes translate -> rotate about Z -> translate so
// that local x = -Length/2 lands on p1 and local x = +Length/2 lands on p2.
// The pivot endpoint is chosen by comparing x1 and x2.
func BuildSegmentFrame(p1, p2 v2.Vec, mode FrameMode) SegmentFrame {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := math.Sqrt(dx*dx + dy*dy)

	var angle float64
	switch mode {
	case FrameLegacy:
		angle = math.Atan(dy / dx)
	default:
		angle = math.Atan2(dy, dx)
	}

	var affine sdf.M44
	if p1.X-p2.X >= 0 {
		if mode == FrameLegacy {
			angle += math.Pi
		}
		affine = sdf.Translate3d(v3.Vec{X: p1.X, Y: p1.Y}).
			Mul(sdf.RotateZ(angle)).
			Mul(sdf.Translate3d(v3.Vec{X: length / 2}))
	} else {
		affine = sdf.Translate3d(v3.Vec{X: p2.X, Y: p2.Y}).
			Mul(sdf.RotateZ(angle)).
			Mul(sdf.Translate3d(v3.Vec{X: -length / 2}))
	}

	return SegmentFrame{Affine: affine, Length: length, Angle: angle}
}

// Point maps a local-frame point to world space.
func (f SegmentFrame) Point(x, y, z float64) v3.Vec {
	return f.Affine.MulPosition(v3.Vec{X: x, Y: y, Z: z})
}

// Near returns the world-space axis point at the segment's first endpoint.
func (f SegmentFrame) Near() v3.Vec {
	return f.Point(-f.Length/2, 0, 0)
}

// Far returns the world-space axis point at the segment's second endpoint.
func (f SegmentFrame) Far() v3.Vec {
	return f.Point(f.Length/2, 0, 0)
}
