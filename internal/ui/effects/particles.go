package effects

import (
	"fmt"
	"math/rand/v2"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/frameloop"
)

// NewParticleField scatters count points uniformly through a cube of side spread
// centred on the origin, all tinted with color.
func NewParticleField(rng *rand.Rand, count int, spread float64, color [3]float64) collab.PointCloud {
	if count < 0 {
		count = 0
	}
	cloud := collab.PointCloud{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}
	for i := 0; i < count*3; i += 3 {
		for axis := 0; axis < 3; axis++ {
			cloud.Positions[i+axis] = float32((rng.Float64() - 0.5) * spread)
			cloud.Colors[i+axis] = float32(color[axis])
		}
	}
	return cloud
}

// Particles is the running background.
type Particles struct {
	scene          collab.Scene
	loop           *frameloop.Loop
	settings       config.Settings
	startMs        float64
	started        bool
	ratioX, ratioY float64
}

// StartParticles builds the point scene on #bg-canvas and renders it every frame.
// It returns nil, nil when the renderer or canvas is unavailable.
func StartParticles(p *Page, renderer collab.SceneRenderer, rng *rand.Rand) (*Particles, error) {
	if renderer == nil {
		p.skip("particles", "no scene renderer")
		return nil, nil
	}
	canvas := p.Doc.ElementByID("bg-canvas")
	if canvas == nil {
		p.skip("particles", "no #bg-canvas")
		return nil, nil
	}
	s := p.Settings
	cloud := NewParticleField(rng, s.ParticleCount, s.ParticleSpread, s.ParticleColor)
	scene, err := renderer.NewPointScene(canvas, cloud, collab.SceneOptions{
		Width:          p.Win.InnerWidth(),
		Height:         p.Win.InnerHeight(),
		PixelRatio:     s.ParticleMaxPixelRatio,
		FieldOfView:    75,
		Near:           0.1,
		Far:            1000,
		CameraDistance: s.CameraDistance,
		PointSize:      s.ParticleSize,
		Opacity:        s.ParticleOpacity,
	})
	if err != nil {
		return nil, fmt.Errorf("build particle scene: %w", err)
	}

	pt := &Particles{scene: scene, settings: s}
	p.Doc.Listen(dom.EventMouseMove, func(ev *dom.Event) {
		w, h := p.Win.InnerWidth(), p.Win.InnerHeight()
		if w > 0 && h > 0 {
			pt.ratioX = ev.ClientX/w - 0.5
			pt.ratioY = ev.ClientY/h - 0.5
		}
	})
	p.Win.Listen(dom.EventResize, func(*dom.Event) {
		scene.Resize(p.Win.InnerWidth(), p.Win.InnerHeight())
	})
	pt.loop = frameloop.Start(p.Win, pt.render)
	return pt, nil
}

func (pt *Particles) render(ts float64) {
	if !pt.started {
		pt.startMs = ts
		pt.started = true
	}
	elapsed := (ts - pt.startMs) / 1000
	rx, ry, cx, cy := ParticleFrame(elapsed, pt.ratioX, pt.ratioY, pt.settings)
	pt.scene.Render(rx, ry, cx, cy)
}

// ParticleFrame computes the rotation and camera offset for a frame elapsed seconds
// after start with the pointer at the given viewport ratios.
func ParticleFrame(elapsed, ratioX, ratioY float64, s config.Settings) (rotX, rotY, camX, camY float64) {
	rotX = elapsed * s.ParticleRotationX
	rotY = elapsed * s.ParticleRotationY
	camX = ratioX * s.CameraParallax
	camY = zero(-ratioY * s.CameraParallax)
	return rotX, rotY, camX, camY
}

// Loop exposes the render loop.
func (pt *Particles) Loop() *frameloop.Loop { return pt.loop }
