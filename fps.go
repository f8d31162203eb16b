package rowan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// CapOverlay tags debug overlay components.
var CapOverlay = NewCapability("overlay")

// FPSOverlay draws an FPS/TPS/entity-count readout. The text refreshes
// every half second to stay readable. X and Y are screen coordinates; the
// overlay ignores the world transform so it stays pinned regardless of
// where it sits in the tree.
type FPSOverlay struct {
	Base

	X, Y int

	accum float64
	text  string
}

// NewFPSOverlay returns an overlay drawing at the given screen position.
func NewFPSOverlay(x, y int) *FPSOverlay {
	return &FPSOverlay{X: x, Y: y}
}

// Capabilities implements Component.
func (f *FPSOverlay) Capabilities() []Capability {
	return []Capability{CapRenderable, CapOverlay}
}

// Update refreshes the readout text on a half-second cadence.
func (f *FPSOverlay) Update(dt float64) {
	f.accum += dt
	if f.accum < 0.5 && f.text != "" {
		return
	}
	f.accum = 0

	count := 0
	if e := f.Entity(); e != nil {
		root := e
		for root.Parent() != nil {
			root = root.Parent()
		}
		count = countEntities(root)
	}
	f.text = fmt.Sprintf("FPS: %.1f  TPS: %.1f  entities: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), count)
}

// Draw implements Renderable.
func (f *FPSOverlay) Draw(target *ebiten.Image, _ [6]float64, _ float64) {
	ebitenutil.DebugPrintAt(target, f.text, f.X, f.Y)
}

func countEntities(e *Entity) int {
	n := 1
	for _, c := range e.Children() {
		n += countEntities(c)
	}
	return n
}
