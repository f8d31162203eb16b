// Profiling:
// go build ./profile/tree
// go tool pprof -http=":8000" -nodefraction=0.001 ./tree mem.pprof

package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/rowanengine/rowan"
)

func main() {
	rounds := 20
	frames := 2000
	branches := 16
	leaves := 32

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, frames, branches, leaves)
	p.Stop()
}

// run assembles a scene of branches*leaves entities, steps it frame by frame
// with capability lookups and world-matrix composition on every leaf, then
// tears it down through the destroy queue.
func run(rounds, frames, branches, leaves int) {
	const dt = 1.0 / 60.0

	for r := 0; r < rounds; r++ {
		scene := rowan.NewScene()
		root := scene.Root()

		for b := 0; b < branches; b++ {
			branch := rowan.NewEntity(fmt.Sprintf("branch_%d", b))
			branch.AddComponent(rowan.NewTransformAt(float64(b)*10, 0))
			root.AddChild(branch)

			for l := 0; l < leaves; l++ {
				leaf := rowan.NewEntity("leaf")
				leaf.AddComponent(rowan.NewTransformAt(0, float64(l)))
				body := rowan.NewKineticBody()
				body.VX = 1
				body.GravityScale = 0
				leaf.AddComponent(body)
				branch.AddChild(leaf)
			}
		}
		scene.Init()

		for f := 0; f < frames; f++ {
			scene.Step(dt)

			for _, branch := range root.Children() {
				for _, leaf := range branch.Children() {
					if tr, ok := rowan.Get[*rowan.Transform](leaf, rowan.CapTransform); ok {
						_ = tr.WorldMatrix()
					}
				}
			}
		}

		for _, branch := range root.Children() {
			scene.Destroy(branch)
		}
		scene.DestroyQueue().Flush()
	}
}
