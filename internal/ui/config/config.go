// Package config holds the interaction layer's tunable constants.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Settings groups every constant the features read. Values are in CSS pixels,
// seconds for tween durations and time.Duration for host timers.
type Settings struct {
	CursorSmoothingOuter float64
	CursorSmoothingInner float64

	MagneticRadius     float64
	MagneticMultiplier float64

	ScrollThreshold     float64
	SectionMargin       float64
	AnchorOffset        float64
	AnchorDuration      float64
	SmoothScrollSeconds float64
	MouseMultiplier     float64
	TouchMultiplier     float64

	TiltMultiplier  float64
	TiltDuration    float64
	TiltPerspective float64

	ParallaxSpeed float64

	ParticleCount         int
	ParticleSpread        float64
	ParticleSize          float64
	ParticleOpacity       float64
	ParticleRotationY     float64
	ParticleRotationX     float64
	CameraDistance        float64
	CameraParallax        float64
	ParticleColor         [3]float64
	ParticleMaxPixelRatio float64

	SuccessDisplay time.Duration
	ErrorDisplay   time.Duration
	FormEndpoint   string

	LoadDelay      time.Duration
	ReadyDelay     time.Duration
	LoadingRemoval time.Duration
	RippleRemoval  time.Duration

	NarrowViewport float64

	DevReloadPath string
}

// Default returns the page's shipped constants.
func Default() Settings {
	return Settings{
		CursorSmoothingOuter: 0.15,
		CursorSmoothingInner: 0.5,

		MagneticRadius:     100,
		MagneticMultiplier: 0.3,

		ScrollThreshold:     300,
		SectionMargin:       200,
		AnchorOffset:        -100,
		AnchorDuration:      1.5,
		SmoothScrollSeconds: 1.2,
		MouseMultiplier:     1,
		TouchMultiplier:     2,

		TiltMultiplier:  10,
		TiltDuration:    0.5,
		TiltPerspective: 1000,

		ParallaxSpeed: 0.5,

		ParticleCount:         1000,
		ParticleSpread:        10,
		ParticleSize:          0.02,
		ParticleOpacity:       0.6,
		ParticleRotationY:     0.05,
		ParticleRotationX:     0.03,
		CameraDistance:        3,
		CameraParallax:        0.5,
		ParticleColor:         [3]float64{0.831, 0.686, 0.216},
		ParticleMaxPixelRatio: 2,

		SuccessDisplay: 3 * time.Second,
		ErrorDisplay:   4 * time.Second,

		LoadDelay:      100 * time.Millisecond,
		ReadyDelay:     2 * time.Second,
		LoadingRemoval: 500 * time.Millisecond,
		RippleRemoval:  600 * time.Millisecond,

		NarrowViewport: 768,
	}
}

// Dataset keys read from the body element.
const (
	DataFormEndpoint    = "data-form-endpoint"
	DataDevReload       = "data-dev-reload"
	DataScrollThreshold = "data-scroll-threshold"
	DataParticleCount   = "data-particle-count"
)

// AttrSource is satisfied by dom.Element.
type AttrSource interface {
	Attr(name string) (string, bool)
}

// ApplyDataset overlays page-provided overrides. Malformed numbers are reported and
// leave the default in place.
func (s *Settings) ApplyDataset(src AttrSource) error {
	if src == nil {
		return nil
	}
	if v, ok := src.Attr(DataFormEndpoint); ok && strings.TrimSpace(v) != "" {
		s.FormEndpoint = strings.TrimSpace(v)
	}
	if v, ok := src.Attr(DataDevReload); ok && strings.TrimSpace(v) != "" {
		s.DevReloadPath = strings.TrimSpace(v)
	}
	var errs []string
	if v, ok := src.Attr(DataScrollThreshold); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || f < 0 {
			errs = append(errs, fmt.Sprintf("%s=%q", DataScrollThreshold, v))
		} else {
			s.ScrollThreshold = f
		}
	}
	if v, ok := src.Attr(DataParticleCount); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("%s=%q", DataParticleCount, v))
		} else {
			s.ParticleCount = n
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid page settings: %s", strings.Join(errs, ", "))
	}
	return nil
}
