package scene

// ShadingMode selects the fragment shading model. The renderer interprets
// the value; the scene only tracks and clamps it.
type ShadingMode int

const (
	ShadingFlat    ShadingMode = 0 // unlit, used for sketch lines
	ShadingGouraud ShadingMode = 1
	ShadingPhong   ShadingMode = 2
	ShadingDepth   ShadingMode = 3
	ShadingRim     ShadingMode = 4
	ShadingCel     ShadingMode = 5
)

// Selectable shading range.
const (
	MinShading = ShadingGouraud
	MaxShading = ShadingCel
)

func (m ShadingMode) String() string {
	switch m {
	case ShadingFlat:
		return "Flat"
	case ShadingGouraud:
		return "Gouraud"
	case ShadingPhong:
		return "Phong"
	case ShadingDepth:
		return "Depth"
	case ShadingRim:
		return "Rim"
	case ShadingCel:
		return "Cel"
	default:
		return "Unknown"
	}
}

// Step moves the mode by delta and clamps it to [MinShading, MaxShading].
func (m ShadingMode) Step(delta int) ShadingMode {
	n := m + ShadingMode(delta)
	if n > MaxShading {
		n = MaxShading
	}
	if n < MinShading {
		n = MinShading
	}
	return n
}

// Valid reports whether m is a selectable shading mode.
func (m ShadingMode) Valid() bool {
	return m >= MinShading && m <= MaxShading
}
