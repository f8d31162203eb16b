package rowan

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CapShape tags procedural geometry components.
var CapShape = NewCapability("shape")

// ShapeRenderer draws untextured procedural geometry over the shared 1x1
// white pixel. Geometry lives in local space; each draw transforms it into
// a reusable scratch buffer, so the Set methods are cheap to call every
// frame.
type ShapeRenderer struct {
	Base

	Color     Color
	BlendMode BlendMode

	verts   []ebiten.Vertex // local space
	inds    []uint16
	xformed []ebiten.Vertex // world space scratch
}

// NewPolygonShape returns a renderer for a convex polygon.
func NewPolygonShape(points []Vec2) *ShapeRenderer {
	s := &ShapeRenderer{Color: ColorWhite}
	s.SetPolygon(points)
	return s
}

// NewCircleShape returns a renderer for a filled circle centered on the
// entity origin.
func NewCircleShape(radius float64, segments int) *ShapeRenderer {
	s := &ShapeRenderer{Color: ColorWhite}
	s.SetCircle(radius, segments)
	return s
}

// NewRingShape returns a renderer for an annulus centered on the entity
// origin.
func NewRingShape(innerRadius, outerRadius float64, segments int) *ShapeRenderer {
	s := &ShapeRenderer{Color: ColorWhite}
	s.SetRing(innerRadius, outerRadius, segments)
	return s
}

// NewLineShape returns a renderer for a thick line segment.
func NewLineShape(x1, y1, x2, y2, width float64) *ShapeRenderer {
	s := &ShapeRenderer{Color: ColorWhite}
	s.SetLine(x1, y1, x2, y2, width)
	return s
}

// Capabilities implements Component.
func (s *ShapeRenderer) Capabilities() []Capability {
	return []Capability{CapRenderable, CapShape}
}

// ensure grows the vertex/index slices to the requested lengths using a
// high-water-mark strategy (never shrinks capacity).
func (s *ShapeRenderer) ensure(numVerts, numInds int) {
	if cap(s.verts) < numVerts {
		s.verts = make([]ebiten.Vertex, numVerts)
	}
	s.verts = s.verts[:numVerts]
	if cap(s.inds) < numInds {
		s.inds = make([]uint16, numInds)
	}
	s.inds = s.inds[:numInds]
}

// SetPolygon rebuilds the geometry as a fan-triangulated convex polygon.
// Fewer than 3 points clears the shape.
func (s *ShapeRenderer) SetPolygon(points []Vec2) {
	n := len(points)
	if n < 3 {
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
		return
	}
	s.ensure(n, (n-2)*3)
	for i, p := range points {
		s.verts[i] = whiteVertex(p.X, p.Y)
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		s.inds[i*3+0] = 0
		s.inds[i*3+1] = uint16(i + 1)
		s.inds[i*3+2] = uint16(i + 2)
	}
}

// SetCircle rebuilds the geometry as a filled circle approximated by a
// polygon fan. Segments below 3 default to 32.
func (s *ShapeRenderer) SetCircle(radius float64, segments int) {
	if segments < 3 {
		segments = 32
	}
	s.ensure(segments, (segments-2)*3)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		s.verts[i] = whiteVertex(math.Cos(angle)*radius, math.Sin(angle)*radius)
	}
	for i := 0; i < segments-2; i++ {
		s.inds[i*3+0] = 0
		s.inds[i*3+1] = uint16(i + 1)
		s.inds[i*3+2] = uint16(i + 2)
	}
}

// SetRing rebuilds the geometry as an annulus: two vertices per segment,
// two triangles per quad, closed around the circle. Segments below 3
// default to 32.
func (s *ShapeRenderer) SetRing(innerRadius, outerRadius float64, segments int) {
	if segments < 3 {
		segments = 32
	}
	s.ensure(segments*2, segments*6)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		cos := math.Cos(angle)
		sin := math.Sin(angle)
		s.verts[i*2] = whiteVertex(cos*innerRadius, sin*innerRadius)
		s.verts[i*2+1] = whiteVertex(cos*outerRadius, sin*outerRadius)
	}
	for i := 0; i < segments; i++ {
		v := uint16(i * 2)
		w := uint16(((i + 1) % segments) * 2)
		ii := i * 6
		s.inds[ii+0] = v
		s.inds[ii+1] = v + 1
		s.inds[ii+2] = w
		s.inds[ii+3] = v + 1
		s.inds[ii+4] = w + 1
		s.inds[ii+5] = w
	}
}

// SetLine rebuilds the geometry as a quad along the segment from (x1, y1)
// to (x2, y2) with the given width.
func (s *ShapeRenderer) SetLine(x1, y1, x2, y2, width float64) {
	nx, ny := perpendicular(Vec2{X: x1, Y: y1}, Vec2{X: x2, Y: y2})
	halfW := width / 2
	s.ensure(4, 6)
	s.verts[0] = whiteVertex(x1+nx*halfW, y1+ny*halfW)
	s.verts[1] = whiteVertex(x1-nx*halfW, y1-ny*halfW)
	s.verts[2] = whiteVertex(x2+nx*halfW, y2+ny*halfW)
	s.verts[3] = whiteVertex(x2-nx*halfW, y2-ny*halfW)
	s.inds[0] = 0
	s.inds[1] = 1
	s.inds[2] = 2
	s.inds[3] = 1
	s.inds[4] = 3
	s.inds[5] = 2
}

// Draw implements Renderable.
func (s *ShapeRenderer) Draw(target *ebiten.Image, world [6]float64, alpha float64) {
	if len(s.verts) == 0 || len(s.inds) == 0 {
		return
	}
	if cap(s.xformed) < len(s.verts) {
		s.xformed = make([]ebiten.Vertex, len(s.verts))
	}
	s.xformed = s.xformed[:len(s.verts)]

	tint := s.Color
	tint.A = clamp01(tint.A * alpha)
	transformVertices(s.verts, s.xformed, world, tint)

	var op ebiten.DrawTrianglesOptions
	op.Blend = s.BlendMode.EbitenBlend()
	target.DrawTriangles(s.xformed, s.inds, WhitePixel(), &op)
}

// whiteVertex returns a vertex at (x, y) sampling the center of the shared
// white pixel.
func whiteVertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}

// transformVertices applies an affine transform and color tint to src
// vertices, writing the result into dst. dst must be at least len(src) in
// length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// Color components are multiplied (vertex color * tint). The tint's alpha
// already has the composed tree alpha baked in, so no double-alpha
// correction is needed.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
