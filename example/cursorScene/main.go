package main

import (
	"fmt"

	"github.com/akmonengine/pivot"
	"github.com/akmonengine/pivot/cursor"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/logger"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a scene with a rotated cursor, an image editor with a
// wide image and a library scene that cannot be edited.
func SetupScene() (*space.Scene, *space.Scene, *space.ImageView) {
	scene := space.NewScene("main")
	scene.Cursor.Location = mgl64.Vec3{1, 2, 3}
	scene.Cursor.RotationMode = cursor.ROT_MODE_XYZ
	scene.Cursor.RotationEuler = mgl64.Vec3{0, 0, mgl64.DegToRad(30)}

	linked := space.NewScene("props")
	linked.Library = "//props.blend"

	image := space.NewImageView(scene)
	image.AspectRatio = mgl64.Vec2{2, 1}
	image.Cursor.Location = mgl64.Vec2{0.25, 0.5}

	return scene, linked, image
}

func main() {
	scene, linked, image := SetupScene()

	graph := depsgraph.NewGraph()
	graph.Subscribe(func(update depsgraph.Update) {
		fmt.Printf("  refresh scene %s (flags %b)\n", update.Scene, update.Flags)
	})
	reports := report.NewList(logger.DefaultLogger)
	engine := pivot.NewEngine(pivot.DefaultConfig(), graph, reports, logger.DefaultLogger)

	fmt.Println("3D cursor: rotate 60° around Z, step by step")
	op, err := engine.Begin(space.NewView3D(scene))
	if err != nil {
		panic(err)
	}
	for step := 1; step <= 3; step++ {
		_ = op.Apply(pivot.Delta{Mode: pivot.ROTATION, Angle: mgl64.DegToRad(20 * float64(step))})
		fmt.Printf("  step %d: euler %v\n", step, scene.Cursor.RotationEuler)
	}
	result, _ := op.Confirm()
	fmt.Printf("  confirmed, changed=%v\n\n", result.Changed)

	fmt.Println("Image cursor: translate then cancel")
	op, err = engine.Begin(image)
	if err != nil {
		panic(err)
	}
	_ = op.Apply(pivot.Delta{Mode: pivot.TRANSLATION, Vector: mgl64.Vec3{0.5, 0.25, 0}})
	fmt.Printf("  during: %v\n", image.Cursor.Location)
	result, _ = op.Cancel()
	fmt.Printf("  canceled=%v, cursor back at %v\n\n", result.Canceled, image.Cursor.Location)

	fmt.Println("Linked scene cursor")
	op, err = engine.Begin(space.NewView3D(linked))
	if err != nil {
		panic(err)
	}
	result, _ = op.Confirm()
	fmt.Printf("  records=%d, reports=%d\n", result.Records, reports.Count(report.ERROR))
}
