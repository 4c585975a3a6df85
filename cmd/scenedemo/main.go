// Command scenedemo renders a small layered scene and saves the last frame.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/backend/raster"
	"github.com/gogpu/scene3d/backend/recording"
	"github.com/gogpu/scene3d/node"
	"github.com/gogpu/scene3d/render"
	"github.com/gogpu/scene3d/resource"
)

const (
	layerBackground = -1
	layerScene      = 0
	layerOverlay    = 1
)

func main() {
	var (
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 600, "image height")
		output      = flag.String("output", "scene.png", "output file")
		frames      = flag.Int("frames", 60, "number of frames to simulate")
		backendName = flag.String("backend", backend.BackendRaster, "backend: raster or recording")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		scene3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	target := render.NewPixmapTarget(*width, *height)
	b, err := newBackend(*backendName, target)
	if err != nil {
		log.Fatal(err)
	}
	r := render.NewRenderer(b, render.WithPlatform(render.TargetPlatform(target)))
	defer r.Close()

	root, err := buildScene(r, *width, *height)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	const dt = float32(1) / 60
	for range *frames {
		root.OnAction(dt)
		root.CollectChilds()
		if err := r.Render(); err != nil {
			log.Fatalf("Frame failed: %v", err)
		}
	}

	st := r.Stats()
	log.Printf("Last frame: %d batches, %d triangles, %d culled\n", st.Batches, st.Triangles, st.Culled)

	if rec, ok := b.(*recording.Backend); ok {
		log.Printf("Recorded %d frames, %d calls, %d state changes\n",
			rec.Frames(), len(rec.Calls()), rec.StateChanges())
		return
	}
	if err := savePNG(*output, target); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d)\n", *output, *width, *height)
}

func newBackend(name string, target *render.PixmapTarget) (backend.Backend, error) {
	var b backend.Backend
	switch name {
	case backend.BackendRaster:
		b = raster.New(target)
	case backend.BackendRecording:
		b = recording.New()
	default:
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, backend.Available())
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("init %s backend: %w", name, err)
	}
	return b, nil
}

// buildScene creates a camera, a screen-filling background, a ring of
// spinning boxes and a fading translucent overlay.
func buildScene(r *render.Renderer, w, h int) (*node.Node, error) {
	root := node.New("root")
	shapes := resource.NewShapes(0)

	cam := node.New("camera")
	cam.SetPosition(mgl32.Vec3{0, 2, 8})
	cam.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if _, err := root.AddChild(cam); err != nil {
		return nil, err
	}
	vp, err := render.NewViewport(cam, 0, 0, render.WithClearColor(scene3d.Black))
	if err != nil {
		return nil, err
	}
	if err := r.AddViewport(vp); err != nil {
		return nil, err
	}

	// Background: an orthographic quad in camera space covering the view.
	bg := node.New("background")
	bg.SetPosition(mgl32.Vec3{0, 0, -render.DefaultFar / 2})
	bg.SetScale(mgl32.Vec3{float32(w), float32(h), 1})
	if _, err := cam.AddChild(bg); err != nil {
		return nil, err
	}
	bgd := render.NewDrawable(bg, shapes.Quad(1, 1))
	bgd.SetColor(scene3d.Hex("#1b2a49"))
	if err := r.AddDrawable(bgd, layerBackground); err != nil {
		return nil, err
	}
	r.Layer(layerBackground).SetOrthographic(true)
	r.Layer(layerBackground).SetDepthTest(false)

	// Ring of boxes sharing two meshes.
	r.Layer(layerScene).SetStateSorted(true)
	colors := []scene3d.Color{scene3d.Red, scene3d.Green, scene3d.Blue, scene3d.Hex("#ffcc00")}
	const count = 8
	for i := range count {
		angle := mgl32.DegToRad(float32(i) * 360 / count)
		n := node.New(fmt.Sprintf("box%d", i))
		n.SetPosition(mgl32.Vec3{3 * sin(angle), 0, 3 * cos(angle)})
		n.AddComponent(node.ComponentFunc(func(n *node.Node, dt float32) {
			n.Rotate(mgl32.QuatRotate(dt, mgl32.Vec3{0, 1, 0}))
		}))
		if _, err := root.AddChild(n); err != nil {
			return nil, err
		}
		mesh := shapes.Box(1, 1, 1)
		if i%2 == 1 {
			mesh = shapes.Box(0.6, 1.6, 0.6)
		}
		d := render.NewDrawable(n, mesh)
		d.SetColor(colors[i%len(colors)])
		if err := r.AddDrawable(d, layerScene); err != nil {
			return nil, err
		}
	}

	// Translucent overlay fading in over one second.
	ov := node.New("overlay")
	ov.SetScale(mgl32.Vec3{2, 2, 2})
	if _, err := root.AddChild(ov); err != nil {
		return nil, err
	}
	ovd := render.NewDrawable(ov, shapes.Box(1, 1, 1))
	ovd.SetColor(scene3d.White)
	ovd.StartAlphaFade(0, 0.5, 1)
	if err := r.AddDrawable(ovd, layerOverlay); err != nil {
		return nil, err
	}
	r.Layer(layerOverlay).SetDepthClear(true)

	st := shapes.Stats()
	scene3d.Logger().Debug("scene built", "meshes", st.Len, "shared", st.Hits)
	return root, nil
}

func sin(a float32) float32 { return float32(math.Sin(float64(a))) }

func cos(a float32) float32 { return float32(math.Cos(float64(a))) }

func savePNG(path string, target *render.PixmapTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, target.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
