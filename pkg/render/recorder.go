package render

import (
	"encoding/json"
	"math"
	"strconv"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Op identifies a recorded facade call.
type Op string

const (
	OpVertices Op = "vertices"
	OpIndices  Op = "indices"
	OpUniform  Op = "uniform"
	OpIndexed  Op = "drawIndexed"
	OpArrays   Op = "drawArrays"
	OpClear    Op = "clear"
	OpRead     Op = "readPixel"
)

// Command is one recorded facade call. Only the fields relevant to Op are
// set.
type Command struct {
	Op      Op        `json:"op"`
	Name    string    `json:"name,omitempty"`
	Value   any       `json:"value"`
	Floats  []float32 `json:"floats,omitempty"`
	Indices []uint32  `json:"indices,omitempty"`
	Prim    Primitive `json:"prim"`
	First   int       `json:"first"`
	Count   int       `json:"count"`
	Color   bool      `json:"color,omitempty"`
	Depth   bool      `json:"depth,omitempty"`
	X       int       `json:"x,omitempty"`
	Y       int       `json:"y,omitempty"`
}

// MarshalJSON encodes non-finite floats in vertex data and uniform values
// as null. Degenerate sketches produce NaN geometry, which encoding/json
// otherwise refuses.
func (c Command) MarshalJSON() ([]byte, error) {
	type plain Command
	return json.Marshal(struct {
		plain
		Floats nullableFloats `json:"floats,omitempty"`
		Value  any            `json:"value"`
	}{plain(c), nullableFloats(c.Floats), nullableValue(c.Value)})
}

// nullableFloats encodes as a JSON array with null for NaN and infinities.
type nullableFloats []float32

func (f nullableFloats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+len(f)*8)
	buf = append(buf, '[')
	for i, v := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	return append(buf, ']'), nil
}

func nullableValue(v any) any {
	switch v := v.(type) {
	case mgl32.Mat4:
		return nullableFloats(v[:])
	case mgl32.Vec3:
		return nullableFloats(v[:])
	case mgl32.Vec4:
		return nullableFloats(v[:])
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	return v
}

// Recorder is a Facade that records calls instead of issuing them. Pixel
// reads are answered from a staged value, which the frontend supplies from
// its own framebuffer read-back.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	pixel    [4]uint8
	staged   bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(c Command) {
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()
}

func (r *Recorder) UploadVertices(data []float32) {
	r.add(Command{Op: OpVertices, Floats: append([]float32(nil), data...)})
}

func (r *Recorder) UploadIndices(data []uint32) {
	r.add(Command{Op: OpIndices, Indices: append([]uint32(nil), data...)})
}

func (r *Recorder) SetUniform(name string, value any) {
	r.add(Command{Op: OpUniform, Name: name, Value: value})
}

func (r *Recorder) DrawIndexed(p Primitive, count int) {
	r.add(Command{Op: OpIndexed, Prim: p, Count: count})
}

func (r *Recorder) DrawArrays(p Primitive, first, count int) {
	r.add(Command{Op: OpArrays, Prim: p, First: first, Count: count})
}

func (r *Recorder) Clear(color, depth bool) {
	r.add(Command{Op: OpClear, Color: color, Depth: depth})
}

// ReadPixel records the read and returns the staged pixel, or zero when
// nothing is staged. The staged pixel is consumed.
func (r *Recorder) ReadPixel(x, y int) [4]uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, Command{Op: OpRead, X: x, Y: y})
	px := r.pixel
	if !r.staged {
		px = [4]uint8{}
	}
	r.staged = false
	return px
}

// StagePixel sets the value returned by the next ReadPixel.
func (r *Recorder) StagePixel(rgba [4]uint8) {
	r.mu.Lock()
	r.pixel = rgba
	r.staged = true
	r.mu.Unlock()
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Flush returns the recorded commands and clears the recording.
func (r *Recorder) Flush() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.commands
	r.commands = nil
	return out
}

// MarshalJSON encodes the current command list.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Commands())
}
