// Command vertexdemo runs the translate stage over an indexed quad and
// prints the clip-space positions frame by frame, drifting the quad
// up and to the right a little each frame.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vertex"
)

func main() {
	var (
		frames  = flag.Int("frames", 8, "number of frames to simulate")
		step    = flag.Float64("step", 0.02, "offset added per frame")
		workers = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		vertex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	va, ib := quad()

	pipe := vertex.NewPipeline(vertex.WithWorkers(*workers))
	defer pipe.Close()

	uniforms := vertex.NewUniformBlock()

	for frame := 0; frame < *frames; frame++ {
		out, err := pipe.DrawIndexed(va, ib, uniforms)
		if err != nil {
			log.Fatalf("Draw failed: %v", err)
		}

		u := uniforms.Snapshot()
		fmt.Printf("frame %d offset=(%+.2f, %+.2f)\n", frame, u.XPosition, u.YPosition)
		for i, o := range out {
			fmt.Printf("  [%d] clip=(%+.3f, %+.3f, %+.3f, %.1f) color=(%.0f, %.0f, %.0f)\n",
				i, o.ClipPosition.X, o.ClipPosition.Y, o.ClipPosition.Z, o.ClipPosition.W,
				o.Color.X, o.Color.Y, o.Color.Z)
		}

		// Same drift as holding the right and up arrows in a viewer.
		if err := uniforms.Add(vertex.UniformXPosition, float32(*step)); err != nil {
			log.Fatalf("Update uniform: %v", err)
		}
		if err := uniforms.Add(vertex.UniformYPosition, float32(*step)); err != nil {
			log.Fatalf("Update uniform: %v", err)
		}
	}
}

// quad builds a unit quad split into two triangles, with one of three
// primary colors per vertex.
func quad() (*vertex.VertexArray, *vertex.IndexBuffer) {
	positions := []vertex.Vec3{
		{X: 0.5, Y: 0.5, Z: 0},   // top right
		{X: 0.5, Y: -0.5, Z: 0},  // bottom right
		{X: -0.5, Y: -0.5, Z: 0}, // bottom left
		{X: -0.5, Y: 0.5, Z: 0},  // top left
	}
	palette := []vertex.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}
	colors := make([]vertex.Vec3, len(positions))
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}

	va := vertex.NewVertexArray()
	if err := va.SetBuffer(vertex.SlotPosition, vertex.BufferFromVec3(positions)); err != nil {
		log.Fatalf("Bind positions: %v", err)
	}
	if err := va.SetBuffer(vertex.SlotColor, vertex.BufferFromVec3(colors)); err != nil {
		log.Fatalf("Bind colors: %v", err)
	}
	ib := vertex.IndicesU32([]uint32{0, 1, 3, 1, 2, 3})
	return va, ib
}
