package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts := cfg.SweepOptions()
	if opts != kernel.DefaultSweepOptions() {
		t.Errorf("sweep options = %+v, want defaults", opts)
	}
}

func TestDefaultMatchesScene(t *testing.T) {
	got := Default().SceneOptions()
	want := scene.DefaultOptions()
	if got.Camera != want.Camera {
		t.Errorf("camera = %+v, want %+v", got.Camera, want.Camera)
	}
	if got.Lighting != want.Lighting {
		t.Errorf("lighting = %+v, want %+v", got.Lighting, want.Lighting)
	}
	if got.LightStart != want.LightStart {
		t.Errorf("light start = %+v, want %+v", got.LightStart, want.LightStart)
	}
	if got.Shading != want.Shading {
		t.Errorf("shading = %v, want %v", got.Shading, want.Shading)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
mesh:
  radius: 0.35
  frame: legacy
camera:
  eye: [0, 0, 8]
shading:
  mode: 4
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Mesh.Radius != 0.35 {
		t.Errorf("radius = %f, want 0.35", cfg.Mesh.Radius)
	}
	if cfg.Mesh.Segments != kernel.DefaultResolution {
		t.Errorf("segments = %d, want default", cfg.Mesh.Segments)
	}
	if cfg.SweepOptions().Frame != kernel.FrameLegacy {
		t.Errorf("frame = %v, want legacy", cfg.SweepOptions().Frame)
	}
	if cfg.SceneOptions().Camera.Eye != (mgl32.Vec3{0, 0, 8}) {
		t.Errorf("eye = %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FovY != 30 {
		t.Errorf("fovy = %f, want default 30", cfg.Camera.FovY)
	}
	if cfg.SceneOptions().Shading != scene.ShadingRim {
		t.Errorf("shading = %v, want Rim", cfg.SceneOptions().Shading)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"too few segments", "mesh: {segments: 2}"},
		{"zero radius", "mesh: {radius: 0}"},
		{"negative radius", "mesh: {radius: -1}"},
		{"unknown frame", "mesh: {frame: atan}"},
		{"zero width", "viewport: {width: 0}"},
		{"negative height", "viewport: {height: -10}"},
		{"shading too low", "shading: {mode: 0}"},
		{"shading too high", "shading: {mode: 6}"},
		{"zero scroll divisor", "interaction: {scrollDivisor: 0}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("mesh: [1, 2"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("syntax errors should not be reported as ErrInvalid")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield defaults")
	}

	path := filepath.Join(dir, "tubesketch.yml")
	if err := os.WriteFile(path, []byte("viewport: {width: 1024, height: 768}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.ControllerOptions()
	if opts.Viewport.Width != 1024 || opts.Viewport.Height != 768 {
		t.Errorf("viewport = %+v", opts.Viewport)
	}
	if opts.ScrollDivisor != 500 || opts.ShearStep != 0.1 {
		t.Errorf("interaction = %+v", opts)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := LoadFromEnv()
	if err != nil || cfg != Default() {
		t.Fatalf("unset env: %+v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("mesh: {segments: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, path)
	if _, err := LoadFromEnv(); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}
