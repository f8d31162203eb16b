package rowan

import "github.com/hajimehoshi/ebiten/v2"

// CapSprite tags image-drawing components.
var CapSprite = NewCapability("sprite")

// SpriteRenderer draws an ebiten.Image at the entity's world transform.
// The image's top-left corner lands on the transformed origin; set the
// sibling Transform's pivot (or call CenterPivot) to rotate and scale
// around a different point.
type SpriteRenderer struct {
	Base

	Image     *ebiten.Image
	Color     Color // tint, ColorWhite leaves the image unchanged
	BlendMode BlendMode

	op ebiten.DrawImageOptions // reused across frames
}

// NewSpriteRenderer returns a renderer for img with a white tint.
func NewSpriteRenderer(img *ebiten.Image) *SpriteRenderer {
	return &SpriteRenderer{Image: img, Color: ColorWhite}
}

// Capabilities implements Component.
func (s *SpriteRenderer) Capabilities() []Capability {
	return []Capability{CapRenderable, CapSprite}
}

// Size returns the image dimensions, or zeros when no image is set.
func (s *SpriteRenderer) Size() (float64, float64) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// CenterPivot sets the sibling Transform's pivot to the image center so
// rotation and scaling happen around the middle of the sprite. No-op
// without an image or a Transform.
func (s *SpriteRenderer) CenterPivot() {
	t, ok := Get[*Transform](s.Entity(), CapTransform)
	if !ok || s.Image == nil {
		return
	}
	w, h := s.Size()
	t.PivotX = w / 2
	t.PivotY = h / 2
}

// Draw implements Renderable. Tint and alpha are premultiplied into the
// color scale, matching ebiten's expectation for straight-alpha sources.
func (s *SpriteRenderer) Draw(target *ebiten.Image, world [6]float64, alpha float64) {
	if s.Image == nil {
		return
	}
	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Concat(affineGeoM(world))
	op.ColorScale.Reset()
	a := float32(clamp01(s.Color.A * alpha))
	op.ColorScale.Scale(float32(s.Color.R)*a, float32(s.Color.G)*a, float32(s.Color.B)*a, a)
	op.Blend = s.BlendMode.EbitenBlend()
	target.DrawImage(s.Image, op)
}

// affineGeoM converts a [6]float64 affine into an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
