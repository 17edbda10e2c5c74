// Package collab declares the optional third-party collaborators the interaction layer
// drives: a smooth scroller, a tween engine and a 3D scene renderer. Each is injected
// as a possibly-nil interface; features that need a missing collaborator skip.
package collab

import (
	"math"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Props is a bag of animatable properties (x, y, scale, opacity, rotateX, clipPath...).
type Props map[string]any

// Stagger spreads a multi-target tween's start times.
type Stagger struct {
	// Each is the delay between consecutive targets in seconds. Ignored when Amount is set.
	Each float64
	// Amount is the total spread across all targets in seconds.
	Amount float64
	// From is the start-order policy: "start", "random" or "center".
	From string
}

// ScrollTrigger gates a tween on a scroll position.
type ScrollTrigger struct {
	Trigger    dom.Element
	Start      string
	End        string
	Scrub      float64
	Horizontal bool
}

// Tween describes the end state and timing of an animation.
type Tween struct {
	Props         Props
	Duration      float64
	Ease          string
	Stagger       *Stagger
	ScrollTrigger *ScrollTrigger
}

// Animator tweens element properties.
type Animator interface {
	To(targets []dom.Element, t Tween)
	FromTo(targets []dom.Element, from Props, to Tween)
}

// ScrollLinked is implemented by animators that can honour Tween.ScrollTrigger.
type ScrollLinked interface {
	ScrollTriggerEnabled() bool
}

// ScrollOptions tune a smooth scroll to a target.
type ScrollOptions struct {
	Offset   float64
	Duration float64
}

// SmoothScroller drives eased page scrolling.
type SmoothScroller interface {
	// Raf advances the scroller; call once per animation frame.
	Raf(timestampMs float64)
	// OnScroll registers a callback for scroll position updates.
	OnScroll(fn func(scroll float64))
	ScrollTo(target dom.Element, opts ScrollOptions)
}

// SmoothScrollConfig is the construction bag handed to the scroller.
type SmoothScrollConfig struct {
	Duration        float64
	Direction       string
	MouseMultiplier float64
	TouchMultiplier float64
	SmoothTouch     bool
	Infinite        bool
}

// ExpoOut is the scroller's easing curve: min(1, 1.001 - 2^(-10t)).
func ExpoOut(t float64) float64 {
	v := 1.001 - math.Pow(2, -10*t)
	if v > 1 {
		return 1
	}
	return v
}

// SceneOptions describe the particle scene.
type SceneOptions struct {
	Width          float64
	Height         float64
	PixelRatio     float64
	FieldOfView    float64
	Near           float64
	Far            float64
	CameraDistance float64
	PointSize      float64
	Opacity        float64
}

// PointCloud is the buffer pair handed to the renderer; both hold 3 floats per point.
type PointCloud struct {
	Positions []float32
	Colors    []float32
}

// Scene is a constructed particle scene.
type Scene interface {
	// Render draws one frame with the points rotated and the camera offset applied.
	Render(rotationX, rotationY, cameraX, cameraY float64)
	Resize(width, height float64)
}

// SceneRenderer constructs scenes on a canvas.
type SceneRenderer interface {
	NewPointScene(canvas dom.Element, cloud PointCloud, opts SceneOptions) (Scene, error)
}
