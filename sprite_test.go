package rowan

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Construction ---

func TestNewSpriteRendererDefaults(t *testing.T) {
	img := ebiten.NewImage(8, 8)
	sr := NewSpriteRenderer(img)

	if sr.Image != img {
		t.Error("Image not retained")
	}
	if sr.Color != ColorWhite {
		t.Errorf("Color = %v, want ColorWhite", sr.Color)
	}
	if sr.BlendMode != BlendNormal {
		t.Errorf("BlendMode = %v, want BlendNormal", sr.BlendMode)
	}
}

func TestSpriteRendererCapabilities(t *testing.T) {
	e := NewEntity("s")
	e.AddComponent(NewSpriteRenderer(nil))

	if _, ok := Get[*SpriteRenderer](e, CapSprite); !ok {
		t.Error("not reachable via CapSprite")
	}
	if _, ok := Get[Renderable](e, CapRenderable); !ok {
		t.Error("not reachable via CapRenderable")
	}
}

// --- Size ---

func TestSpriteSize(t *testing.T) {
	sr := NewSpriteRenderer(ebiten.NewImage(48, 32))

	w, h := sr.Size()
	if w != 48 || h != 32 {
		t.Errorf("Size = (%v, %v), want (48, 32)", w, h)
	}
}

func TestSpriteSizeNoImage(t *testing.T) {
	sr := NewSpriteRenderer(nil)

	w, h := sr.Size()
	if w != 0 || h != 0 {
		t.Errorf("Size = (%v, %v), want zeros", w, h)
	}
}

// --- CenterPivot ---

func TestCenterPivot(t *testing.T) {
	e := NewEntity("s")
	tr := NewTransform()
	e.AddComponent(tr)
	sr := NewSpriteRenderer(ebiten.NewImage(48, 32))
	e.AddComponent(sr)

	sr.CenterPivot()

	if tr.PivotX != 24 || tr.PivotY != 16 {
		t.Errorf("pivot = (%v, %v), want (24, 16)", tr.PivotX, tr.PivotY)
	}
}

func TestCenterPivotNoImage(t *testing.T) {
	e := NewEntity("s")
	tr := NewTransform()
	e.AddComponent(tr)
	sr := NewSpriteRenderer(nil)
	e.AddComponent(sr)

	sr.CenterPivot()

	if tr.PivotX != 0 || tr.PivotY != 0 {
		t.Errorf("pivot = (%v, %v), want untouched zeros", tr.PivotX, tr.PivotY)
	}
}

func TestCenterPivotNoTransform(t *testing.T) {
	e := NewEntity("s")
	sr := NewSpriteRenderer(ebiten.NewImage(8, 8))
	e.AddComponent(sr)

	sr.CenterPivot() // must not panic
}

// --- Draw guards ---

func TestSpriteDrawNoImage(t *testing.T) {
	sr := NewSpriteRenderer(nil)
	sr.Draw(nil, identityTransform, 1) // nil target never touched
}

// --- affineGeoM ---

func TestAffineGeoMIdentity(t *testing.T) {
	g := affineGeoM(identityTransform)

	want := [2][3]float64{{1, 0, 0}, {0, 1, 0}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if got := g.Element(i, j); got != want[i][j] {
				t.Errorf("Element(%d, %d) = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestAffineGeoMAppliesPoint(t *testing.T) {
	// Quarter-turn plus translation: (3, 0) lands at (10, 23).
	g := affineGeoM([6]float64{0, 1, -1, 0, 10, 20})

	x, y := g.Apply(3, 0)
	if x != 10 || y != 23 {
		t.Errorf("Apply(3, 0) = (%v, %v), want (10, 23)", x, y)
	}
}
