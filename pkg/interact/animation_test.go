package interact

import (
	"math"
	"testing"

	"github.com/chazu/tubesketch/pkg/scene"
)

func TestGravityToggleWithoutFrameIsNoop(t *testing.T) {
	c, _ := newController()
	mesh, light := c.Scene().Mesh, c.Scene().Light

	if st := c.Toggle(AnimGravity); st != Running {
		t.Fatalf("toggle on = %v", st)
	}
	if st := c.Toggle(AnimGravity); st != Stopped {
		t.Fatalf("toggle off = %v", st)
	}
	if c.Scene().Mesh != mesh || c.Scene().Light != light {
		t.Error("transforms changed without a frame")
	}
	if v := c.Animator().Velocity(); v != 0 {
		t.Errorf("velocity = %f, want 0", v)
	}
}

func TestGravityFallsAndStopResetsVelocity(t *testing.T) {
	c, _ := newController()
	c.Toggle(AnimGravity)
	c.Tick()

	// First frame: the mesh moves by the initial velocity (zero), the light
	// by one acceleration step.
	if got := c.Scene().Mesh.Translate.Y(); got != 0 {
		t.Errorf("mesh y = %f, want 0", got)
	}
	if got := c.Scene().Light.Translate.Y(); math.Abs(float64(got)-(1+Gravity)) > 1e-6 {
		t.Errorf("light y = %f, want %f", got, 1+Gravity)
	}
	if v := c.Animator().Velocity(); math.Abs(v-2*Gravity) > 1e-12 {
		t.Errorf("velocity = %g, want %g", v, 2*Gravity)
	}

	c.Tick()
	y := c.Scene().Mesh.Translate.Y()
	if y >= 0 {
		t.Errorf("mesh should be falling, y = %f", y)
	}

	c.Toggle(AnimGravity)
	if v := c.Animator().Velocity(); v != 0 {
		t.Errorf("velocity after stop = %f, want 0", v)
	}
	if c.Scene().Mesh.Translate.Y() != y {
		t.Error("stop should freeze the transform")
	}
	if c.Tick() {
		t.Error("Tick with nothing running should report false")
	}
}

func TestSpin(t *testing.T) {
	c, _ := newController()
	c.Toggle(AnimSpin)
	c.Tick()
	c.Tick()
	want := float32(2 * SpinStep)
	if got := c.Scene().Mesh.Rotation.Y(); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("mesh rotation y = %f, want %f", got, want)
	}
	if got := c.Scene().Light.Rotation.Y(); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("light rotation y = %f, want %f", got, want)
	}
}

func TestSquarePath(t *testing.T) {
	c, _ := newController()
	c.Scene().Mesh.TranslateBy(0.5, 0, 0)
	c.Toggle(AnimSquare)

	c.Tick()
	if got := c.Scene().Mesh.Translate.X(); got != 0.5 {
		t.Errorf("first frame x = %f, want anchor 0.5", got)
	}
	c.Tick()
	if got := c.Scene().Mesh.Translate.X(); math.Abs(float64(got)-0.51) > 1e-6 {
		t.Errorf("second frame x = %f, want 0.51", got)
	}
	if got := c.Scene().Light.Translate.X(); math.Abs(float64(got)-1.01) > 1e-6 {
		t.Errorf("light x = %f, want 1.01", got)
	}

	for i := 0; i < 28; i++ {
		c.Tick()
	}
	if p := c.Animator().Phase(); p != 1 {
		t.Errorf("phase after 30 frames = %d, want 1", p)
	}
	if got := c.Scene().Mesh.Translate.Y(); got <= 0 {
		t.Errorf("second leg should move +y, y = %f", got)
	}
}

func TestSquareToggleReanchors(t *testing.T) {
	c, _ := newController()
	c.Toggle(AnimSquare)
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	c.Toggle(AnimSquare)
	x := c.Scene().Mesh.Translate.X()

	c.Toggle(AnimSquare)
	c.Tick()
	if got := c.Scene().Mesh.Translate.X(); got != x {
		t.Errorf("restart x = %f, want anchor %f", got, x)
	}
}

func TestAnimationsCompose(t *testing.T) {
	g := scene.New(scene.DefaultOptions())
	var a Animator
	a.Toggle(AnimSpin, g)
	a.Toggle(AnimGravity, g)
	if !a.Tick(g) {
		t.Fatal("Tick should report running animations")
	}
	if g.Mesh.Rotation.Y() == 0 {
		t.Error("spin did not advance")
	}
	if a.Velocity() == 0 {
		t.Error("gravity did not advance")
	}
	a.Stop()
	if a.Active() || a.Velocity() != 0 {
		t.Error("Stop should halt everything and clear velocity")
	}
}

func TestParseNames(t *testing.T) {
	if a, err := ParseAnimation("gravity"); err != nil || a != AnimGravity {
		t.Errorf("ParseAnimation(gravity) = %v, %v", a, err)
	}
	if _, err := ParseAnimation("bounce"); err == nil {
		t.Error("unknown animation should fail")
	}
	if b, err := ParseButton("middle"); err != nil || b != ButtonMiddle {
		t.Errorf("ParseButton(middle) = %v, %v", b, err)
	}
	if k, err := KeyCode("w"); err != nil || k != KeyW {
		t.Errorf("KeyCode(w) = %d, %v", k, err)
	}
	if _, err := KeyCode("q"); err == nil {
		t.Error("unknown key should fail")
	}
}
