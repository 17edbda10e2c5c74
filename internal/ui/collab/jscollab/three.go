//go:build js && wasm

package jscollab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"syscall/js"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

var errNotBrowserElement = errors.New("canvas is not a browser element")

// Three builds point scenes with three.js.
type Three struct {
	three js.Value
}

var _ collab.SceneRenderer = (*Three)(nil)

// NewThree returns the renderer, or false when THREE is not loaded.
func NewThree() (*Three, bool) {
	t, ok := global("THREE")
	if !ok {
		return nil, false
	}
	return &Three{three: t}, true
}

type pointScene struct {
	scene, camera, renderer, points js.Value
}

func (t *Three) NewPointScene(canvas dom.Element, cloud collab.PointCloud, opts collab.SceneOptions) (scene collab.Scene, err error) {
	target, ok := jsTarget(canvas)
	if !ok {
		return nil, errNotBrowserElement
	}
	defer func() {
		// three.js throws when no WebGL context can be created.
		if r := recover(); r != nil {
			scene, err = nil, fmt.Errorf("three.js: %v", r)
		}
	}()

	s := &pointScene{
		scene:  t.three.Get("Scene").New(),
		camera: t.three.Get("PerspectiveCamera").New(opts.FieldOfView, aspect(opts.Width, opts.Height), opts.Near, opts.Far),
		renderer: t.three.Get("WebGLRenderer").New(map[string]any{
			"canvas":    target,
			"alpha":     true,
			"antialias": true,
		}),
	}
	s.renderer.Call("setSize", opts.Width, opts.Height)
	dpr := js.Global().Get("devicePixelRatio")
	ratio := 1.0
	if dpr.Type() == js.TypeNumber {
		ratio = dpr.Float()
	}
	s.renderer.Call("setPixelRatio", math.Min(ratio, opts.PixelRatio))

	geometry := t.three.Get("BufferGeometry").New()
	attr := t.three.Get("BufferAttribute")
	geometry.Call("setAttribute", "position", attr.New(float32Array(cloud.Positions), 3))
	geometry.Call("setAttribute", "color", attr.New(float32Array(cloud.Colors), 3))
	material := t.three.Get("PointsMaterial").New(map[string]any{
		"size":            opts.PointSize,
		"sizeAttenuation": true,
		"vertexColors":    true,
		"blending":        t.three.Get("AdditiveBlending"),
		"transparent":     true,
		"opacity":         opts.Opacity,
	})
	s.points = t.three.Get("Points").New(geometry, material)
	s.scene.Call("add", s.points)
	s.camera.Get("position").Set("z", opts.CameraDistance)
	return s, nil
}

func (s *pointScene) Render(rotX, rotY, camX, camY float64) {
	rotation := s.points.Get("rotation")
	rotation.Set("x", rotX)
	rotation.Set("y", rotY)
	position := s.camera.Get("position")
	position.Set("x", camX)
	position.Set("y", camY)
	s.camera.Call("lookAt", 0, 0, 0)
	s.renderer.Call("render", s.scene, s.camera)
}

func (s *pointScene) Resize(w, h float64) {
	s.camera.Set("aspect", aspect(w, h))
	s.camera.Call("updateProjectionMatrix")
	s.renderer.Call("setSize", w, h)
}

func aspect(w, h float64) float64 {
	if h <= 0 {
		return 1
	}
	return w / h
}

// float32Array copies vals into a new Float32Array through a byte view.
func float32Array(vals []float32) js.Value {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	bytes := js.Global().Get("Uint8Array").New(len(buf))
	js.CopyBytesToJS(bytes, buf)
	return js.Global().Get("Float32Array").New(bytes.Get("buffer"))
}
