// Package config loads the tool's YAML configuration. Every field has a
// default; a file only needs to name the values it changes.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/chazu/tubesketch/pkg/interact"
	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/scene"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "TUBESKETCH_CONFIG"

const maxConfigSize = 1 << 20

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Vec3 is a YAML-friendly three component vector.
type Vec3 [3]float32

func (v Vec3) mgl() mgl32.Vec3 { return mgl32.Vec3(v) }

type Mesh struct {
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	Frame    string  `yaml:"frame"`
}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Camera struct {
	Eye    Vec3    `yaml:"eye"`
	Center Vec3    `yaml:"center"`
	Up     Vec3    `yaml:"up"`
	FovY   float32 `yaml:"fovy"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

type Light struct {
	Color    Vec3    `yaml:"color"`
	Position Vec3    `yaml:"position"`
	Scale    float32 `yaml:"scale"`
}

type Shading struct {
	Mode             int     `yaml:"mode"`
	Ambient          Vec3    `yaml:"ambient"`
	Specular         Vec3    `yaml:"specular"`
	SpecularConstant float32 `yaml:"specularConstant"`
}

type Interaction struct {
	ScrollDivisor float64 `yaml:"scrollDivisor"`
	ShearStep     float64 `yaml:"shearStep"`
}

// Config is the full configuration.
type Config struct {
	Mesh        Mesh        `yaml:"mesh"`
	Viewport    Viewport    `yaml:"viewport"`
	Camera      Camera      `yaml:"camera"`
	Light       Light       `yaml:"light"`
	Shading     Shading     `yaml:"shading"`
	Interaction Interaction `yaml:"interaction"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mesh: Mesh{
			Radius:   kernel.DefaultRadius,
			Segments: kernel.DefaultResolution,
			Frame:    kernel.FrameAtan2.String(),
		},
		Viewport: Viewport{Width: 800, Height: 800},
		Camera: Camera{
			Eye:    Vec3{0, 0, 5},
			Center: Vec3{0, 0, -100},
			Up:     Vec3{0, 1, 0},
			FovY:   30,
			Near:   1,
			Far:    100,
		},
		Light: Light{
			Color:    Vec3{1, 1, 1},
			Position: Vec3{1, 1, 1},
			Scale:    0.1,
		},
		Shading: Shading{
			Mode:             int(scene.ShadingGouraud),
			Ambient:          Vec3{0, 0, 0.2},
			Specular:         Vec3{0, 1, 0},
			SpecularConstant: 8,
		},
		Interaction: Interaction{
			ScrollDivisor: 500,
			ShearStep:     0.1,
		},
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config: %s is %d bytes, limit %d", path, info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by EnvVar, or returns the defaults when
// the variable is unset.
func LoadFromEnv() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Mesh.Segments < 3 {
		return invalid("mesh.segments = %d, need at least 3", c.Mesh.Segments)
	}
	if c.Mesh.Radius <= 0 {
		return invalid("mesh.radius = %g, must be positive", c.Mesh.Radius)
	}
	if _, err := kernel.ParseFrameMode(c.Mesh.Frame); err != nil {
		return invalid("mesh.frame: %v", err)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return invalid("viewport %dx%d must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if !scene.ShadingMode(c.Shading.Mode).Valid() {
		return invalid("shading.mode = %d, must be in [%d,%d]", c.Shading.Mode, scene.MinShading, scene.MaxShading)
	}
	if c.Interaction.ScrollDivisor == 0 {
		return invalid("interaction.scrollDivisor must be non-zero")
	}
	return nil
}

// SweepOptions returns the mesh builder settings. The config must be valid.
func (c Config) SweepOptions() kernel.SweepOptions {
	mode, _ := kernel.ParseFrameMode(c.Mesh.Frame)
	return kernel.SweepOptions{
		Radius:     c.Mesh.Radius,
		Resolution: c.Mesh.Segments,
		Frame:      mode,
	}
}

// SceneOptions returns the scene settings.
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		Camera: scene.Camera{
			Eye:    c.Camera.Eye.mgl(),
			Center: c.Camera.Center.mgl(),
			Up:     c.Camera.Up.mgl(),
			FovY:   c.Camera.FovY,
			Near:   c.Camera.Near,
			Far:    c.Camera.Far,
		},
		Lighting: scene.Lighting{
			Color:            c.Light.Color.mgl(),
			Ambient:          c.Shading.Ambient.mgl(),
			Specular:         c.Shading.Specular.mgl(),
			SpecularConstant: c.Shading.SpecularConstant,
		},
		Shading: scene.ShadingMode(c.Shading.Mode),
		LightStart: scene.TransformState{
			Translate: c.Light.Position.mgl(),
			Scale:     c.Light.Scale,
		},
	}
}

// ControllerOptions returns the interaction settings.
func (c Config) ControllerOptions() interact.Options {
	return interact.Options{
		Sweep:         c.SweepOptions(),
		Viewport:      interact.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height},
		ScrollDivisor: c.Interaction.ScrollDivisor,
		ShearStep:     c.Interaction.ShearStep,
	}
}
