// Package rowan is a lightweight entity-component scene engine for
// [Ebitengine].
//
// Rowan provides an entity tree with typed components, capability-based
// component lookup, a depth-first lifecycle (Init, Update, Destroy),
// deferred destruction, transforms, sprite and shape rendering, input
// snapshots, tweens, lua scripting, and procedural audio.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := rowan.NewScene()
//	// ... add entities ...
//	rowan.Run(scene, rowan.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *rowan.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Entities and components
//
// Every game object is an [Entity]: a named node in a tree rooted at
// [Scene.Root]. Behavior and appearance come from components attached to
// entities. A component declares the capabilities it provides, and each
// entity holds at most one component per capability:
//
//	hero := rowan.NewEntity("hero")
//	hero.AddComponent(rowan.NewTransformAt(100, 50))
//	hero.AddComponent(rowan.NewSpriteRenderer(heroImage))
//	scene.Root().AddChild(hero)
//
// Components are looked up by capability, so systems can find what they
// need without knowing concrete types:
//
//	if t, ok := rowan.Get[*rowan.Transform](hero, rowan.CapTransform); ok {
//		t.X += 4
//	}
//
// Misuse of the tree (cycles, foreign children, adds on destroyed
// entities) logs a warning and leaves the tree unchanged rather than
// panicking; a broken entity should never take the frame down.
//
// # Lifecycle
//
// [Scene.Update] drives everything: entities initialize depth-first on the
// first frame, every component updates each frame in tree order, and
// entities destroyed via [Scene.Destroy] are torn down at the end of the
// frame, children before detachment.
//
// [Ebitengine]: https://ebitengine.org
package rowan
