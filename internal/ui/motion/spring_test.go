package motion

import (
	"testing"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom/domtest"
)

func fixture(t *testing.T) (*domtest.Window, dom.Element) {
	t.Helper()
	doc := domtest.MustParse(`<html><body><div class="card"></div></body></html>`)
	return domtest.NewWindow(1280, 800), doc.Query(".card")
}

func TestSpringConvergesToTarget(t *testing.T) {
	win, card := fixture(t)
	anim := NewSpringAnimator(win)

	anim.To([]dom.Element{card}, collab.Tween{
		Props:    collab.Props{"rotateX": 5.0, "rotateY": -2.5, "transformPerspective": 1000.0},
		Duration: 0.5,
	})
	win.Frames(600)

	want := "perspective(1000px) rotateX(5deg) rotateY(-2.5deg)"
	if got := card.Style("transform"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if anim.Active() {
		t.Fatal("expected springs to settle")
	}
	if win.PendingFrames() != 0 {
		t.Fatalf("expected idle animator to stop requesting frames, got %d", win.PendingFrames())
	}
}

func TestFromToStartsAtFromState(t *testing.T) {
	win, card := fixture(t)
	anim := NewSpringAnimator(win)

	anim.FromTo([]dom.Element{card},
		collab.Props{"scale": 0.98, "opacity": 0.8},
		collab.Tween{Props: collab.Props{"scale": 1, "opacity": 1}, Duration: 1},
	)
	if got := card.Style("opacity"); got != "0.8" {
		t.Fatalf("expected from opacity applied immediately, got %q", got)
	}
	win.Frames(600)
	if got := card.Style("opacity"); got != "1" {
		t.Fatalf("expected opacity 1, got %q", got)
	}
	if got := card.Style("transform"); got != "scale(1)" {
		t.Fatalf("expected scale(1), got %q", got)
	}
}

func TestStringPropsAreWrittenDirectly(t *testing.T) {
	win, card := fixture(t)
	anim := NewSpringAnimator(win)
	anim.To([]dom.Element{card}, collab.Tween{Props: collab.Props{"clipPath": "inset(0)"}})
	if got := card.Style("clip-path"); got != "inset(0)" {
		t.Fatalf("expected clip-path written, got %q", got)
	}
	anim.Stop()
}

func TestStateSharedAcrossWrappersOfOneNode(t *testing.T) {
	doc := domtest.MustParse(`<html><body><section id="contact"></section></body></html>`)
	win := domtest.NewWindow(1280, 800)
	anim := NewSpringAnimator(win)

	for i := 0; i < 500; i++ {
		anim.FromTo([]dom.Element{doc.ElementByID("contact")},
			collab.Props{"scale": 0.98, "opacity": 0.8},
			collab.Tween{Props: collab.Props{"scale": 1.0, "opacity": 1.0}, Duration: 1},
		)
	}
	if n := len(anim.elements); n != 1 {
		t.Fatalf("expected one entry for one node, got %d", n)
	}

	win.Frames(600)
	if n := len(anim.elements); n != 0 {
		t.Fatalf("expected entry released once back at rest, got %d", n)
	}
	if got := doc.ElementByID("contact").Style("opacity"); got != "1" {
		t.Fatalf("expected opacity 1, got %q", got)
	}
}

func TestDisplacedStateIsKept(t *testing.T) {
	win, card := fixture(t)
	anim := NewSpringAnimator(win)
	anim.To([]dom.Element{card}, collab.Tween{Props: collab.Props{"x": 20.0}, Duration: 0.5})
	win.Frames(600)
	if n := len(anim.elements); n != 1 {
		t.Fatalf("expected displaced element to keep its state, got %d entries", n)
	}

	anim.To([]dom.Element{card}, collab.Tween{Props: collab.Props{"x": 0.0}, Duration: 0.5})
	win.Frames(1)
	if got := card.Style("transform"); got == "translate(0px, 0px)" {
		t.Fatal("expected motion to continue from 20px rather than jump")
	}
	win.Frames(600)
	if n := len(anim.elements); n != 0 {
		t.Fatalf("expected state released at rest, got %d entries", n)
	}
}
