package effects

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

type renderCall struct {
	rotX, rotY, camX, camY float64
}

type fakeScene struct {
	renders []renderCall
	resizes [][2]float64
}

func (s *fakeScene) Render(rotX, rotY, camX, camY float64) {
	s.renders = append(s.renders, renderCall{rotX, rotY, camX, camY})
}

func (s *fakeScene) Resize(w, h float64) { s.resizes = append(s.resizes, [2]float64{w, h}) }

type fakeRenderer struct {
	scene  *fakeScene
	err    error
	canvas dom.Element
	cloud  collab.PointCloud
	opts   collab.SceneOptions
}

func (r *fakeRenderer) NewPointScene(canvas dom.Element, cloud collab.PointCloud, opts collab.SceneOptions) (collab.Scene, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.canvas, r.cloud, r.opts = canvas, cloud, opts
	r.scene = &fakeScene{}
	return r.scene, nil
}

func TestParticleFieldStaysInsideCube(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	color := [3]float64{0.831, 0.686, 0.216}
	cloud := NewParticleField(rng, 500, 10, color)
	if len(cloud.Positions) != 1500 || len(cloud.Colors) != 1500 {
		t.Fatalf("expected 1500 floats per buffer, got %d/%d", len(cloud.Positions), len(cloud.Colors))
	}
	for i, v := range cloud.Positions {
		if v < -5 || v > 5 {
			t.Fatalf("position %d out of range: %v", i, v)
		}
	}
	for i := 0; i < len(cloud.Colors); i += 3 {
		if cloud.Colors[i] != float32(color[0]) || cloud.Colors[i+2] != float32(color[2]) {
			t.Fatalf("point %d has wrong tint", i/3)
		}
	}
	if empty := NewParticleField(rng, -1, 10, color); len(empty.Positions) != 0 {
		t.Fatal("expected negative count to build an empty field")
	}
}

func TestParticleFrame(t *testing.T) {
	s := config.Default()
	rx, ry, cx, cy := ParticleFrame(2, 0.25, -0.25, s)
	if math.Abs(rx-0.06) > 1e-12 || math.Abs(ry-0.1) > 1e-12 {
		t.Fatalf("unexpected rotation (%v,%v)", rx, ry)
	}
	if cx != 0.125 || cy != 0.125 {
		t.Fatalf("unexpected camera offset (%v,%v)", cx, cy)
	}
	_, _, _, cy = ParticleFrame(0, 0, 0, s)
	if math.Signbit(cy) {
		t.Fatal("expected positive zero camera y")
	}
}

func TestStartParticlesRendersEveryFrame(t *testing.T) {
	f := newFixture(t)
	r := &fakeRenderer{}
	pt, err := StartParticles(f.page, r, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatalf("start particles: %v", err)
	}
	if id, _ := r.canvas.Attr("id"); id != "bg-canvas" {
		t.Fatalf("expected scene on #bg-canvas, got %q", id)
	}
	if len(r.cloud.Positions) != 3000 {
		t.Fatalf("expected 1000 points, got %d floats", len(r.cloud.Positions))
	}
	if r.opts.PixelRatio != 2 || r.opts.FieldOfView != 75 || r.opts.Width != 1280 {
		t.Fatalf("unexpected scene options %+v", r.opts)
	}

	f.doc.Dispatch(dom.NewEvent(dom.EventMouseMove, 960, 200, nil))
	f.win.Frames(61)
	if len(r.scene.renders) != 61 {
		t.Fatalf("expected 61 renders, got %d", len(r.scene.renders))
	}
	if first := r.scene.renders[0]; first.rotX != 0 || first.rotY != 0 {
		t.Fatalf("expected first frame at zero rotation, got %+v", first)
	}
	last := r.scene.renders[60]
	if math.Abs(last.rotY-0.05) > 1e-9 || math.Abs(last.rotX-0.03) > 1e-9 {
		t.Fatalf("expected one second of rotation, got %+v", last)
	}
	if last.camX != 0.125 || last.camY != 0.125 {
		t.Fatalf("expected pointer parallax, got %+v", last)
	}

	f.win.SetSize(800, 600)
	f.win.Dispatch(dom.NewEvent(dom.EventResize, 0, 0, nil))
	if len(r.scene.resizes) != 1 || r.scene.resizes[0] != [2]float64{800, 600} {
		t.Fatalf("expected resize forwarded, got %v", r.scene.resizes)
	}

	pt.Loop().Stop()
	f.win.Frames(3)
	if len(r.scene.renders) != 61 {
		t.Fatal("expected no renders after stop")
	}
}

func TestStartParticlesSkips(t *testing.T) {
	f := newFixture(t)
	if pt, err := StartParticles(f.page, nil, rand.New(rand.NewPCG(1, 1))); pt != nil || err != nil {
		t.Fatal("expected skip without renderer")
	}

	boom := errors.New("webgl unavailable")
	if _, err := StartParticles(f.page, &fakeRenderer{err: boom}, rand.New(rand.NewPCG(1, 1))); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}

	f.doc.ElementByID("bg-canvas").Remove()
	r := &fakeRenderer{}
	if pt, err := StartParticles(f.page, r, rand.New(rand.NewPCG(1, 1))); pt != nil || err != nil || r.scene != nil {
		t.Fatal("expected skip without canvas")
	}
}
