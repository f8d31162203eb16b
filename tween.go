package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CapTween tags animation components.
var CapTween = NewCapability("tween")

// Tween animates up to 4 float64 fields simultaneously. Construct one with
// TweenPosition, TweenScale, TweenRotation, TweenAlpha or TweenValue and
// attach it; the scene's update walk advances it each frame.
//
// When every track finishes the tracks clear themselves, then OnComplete
// fires once. The callback may bind new tracks to chain animations; an
// idle tween costs nothing.
type Tween struct {
	Base

	// OnComplete fires once each time all tracks finish.
	OnComplete func()

	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
}

// TweenPosition animates t.X and t.Y to the given coordinates.
func TweenPosition(t *Transform, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.MoveTo(t, toX, toY, duration, fn)
	return tw
}

// TweenScale animates t.ScaleX and t.ScaleY to the given values.
func TweenScale(t *Transform, toSX, toSY float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.ScaleTo(t, toSX, toSY, duration, fn)
	return tw
}

// TweenRotation animates t.Rotation to the given angle.
func TweenRotation(t *Transform, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.RotateTo(t, to, duration, fn)
	return tw
}

// TweenAlpha animates t.Alpha to the given value.
func TweenAlpha(t *Transform, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.FadeTo(t, to, duration, fn)
	return tw
}

// TweenValue animates an arbitrary float64 field from its current value.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := &Tween{}
	tw.ValueTo(field, to, duration, fn)
	return tw
}

// Capabilities implements Component.
func (tw *Tween) Capabilities() []Capability {
	return []Capability{CapTween}
}

// Active reports whether any track is still running.
func (tw *Tween) Active() bool {
	return tw.count > 0
}

// MoveTo replaces the tracks with a position animation on t.
func (tw *Tween) MoveTo(t *Transform, toX, toY float64, duration float32, fn ease.TweenFunc) {
	tw.clear()
	tw.addTrack(&t.X, float32(toX), duration, fn)
	tw.addTrack(&t.Y, float32(toY), duration, fn)
}

// ScaleTo replaces the tracks with a scale animation on t.
func (tw *Tween) ScaleTo(t *Transform, toSX, toSY float64, duration float32, fn ease.TweenFunc) {
	tw.clear()
	tw.addTrack(&t.ScaleX, float32(toSX), duration, fn)
	tw.addTrack(&t.ScaleY, float32(toSY), duration, fn)
}

// RotateTo replaces the tracks with a rotation animation on t.
func (tw *Tween) RotateTo(t *Transform, to float64, duration float32, fn ease.TweenFunc) {
	tw.clear()
	tw.addTrack(&t.Rotation, float32(to), duration, fn)
}

// FadeTo replaces the tracks with an alpha animation on t.
func (tw *Tween) FadeTo(t *Transform, to float64, duration float32, fn ease.TweenFunc) {
	tw.clear()
	tw.addTrack(&t.Alpha, float32(to), duration, fn)
}

// ValueTo replaces the tracks with a single animation on an arbitrary field.
func (tw *Tween) ValueTo(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	tw.clear()
	tw.addTrack(field, float32(to), duration, fn)
}

func (tw *Tween) clear() {
	for i := 0; i < tw.count; i++ {
		tw.tweens[i] = nil
		tw.fields[i] = nil
	}
	tw.count = 0
}

// addTrack binds one gween track starting from the field's current value.
// Tracks beyond the fixed capacity are dropped.
func (tw *Tween) addTrack(field *float64, to float32, duration float32, fn ease.TweenFunc) {
	if tw.count >= len(tw.tweens) || field == nil {
		return
	}
	tw.tweens[tw.count] = gween.New(float32(*field), to, duration, fn)
	tw.fields[tw.count] = field
	tw.count++
}

// Update advances all tracks by dt seconds and writes the eased values
// through the bound pointers. When the last track finishes the tracks are
// cleared before OnComplete runs, so the callback can start a new
// animation on the same component.
func (tw *Tween) Update(dt float64) {
	if tw.count == 0 {
		return
	}

	allDone := true
	for i := 0; i < tw.count; i++ {
		val, finished := tw.tweens[i].Update(float32(dt))
		*tw.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if !allDone {
		return
	}

	tw.clear()
	if tw.OnComplete != nil {
		tw.OnComplete()
	}
}
