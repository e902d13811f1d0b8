package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"
)

const (
	SceneFinal        = "final"
	SceneSimpleLight  = "light"
	SceneMesh         = "mesh"
	SceneInstanceGrid = "grid"
)

func main() {
	scene := flag.String("scene", SceneFinal, "scene to render: final, light, mesh, grid")
	width := flag.Int("width", DEFAULT_IMAGE_WIDTH, "rendered image width in pixels")
	samples := flag.Int("samples", DEFAULT_SAMPLES, "samples per pixel")
	depth := flag.Int("depth", DEFAULT_MAX_DEPTH, "maximum ray bounce depth")
	workers := flag.Int("workers", 0, "render worker goroutines (0 = GOMAXPROCS)")
	model := flag.String("model", "", "OBJ model path for the mesh and grid scenes")
	preview := flag.Bool("preview", false, "show a live OpenGL preview window")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "per-render sampling salt")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	flag.Parse()

	if err := run(*scene, *width, *samples, *depth, *workers, *model, *seed,
		*preview, *cpuprofile, *memprofile, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "go-path-tracer: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneName string, width, samples, depth, workers int, model string,
	seed uint64, preview bool, cpuprofile, memprofile, outPath string) error {

	if outPath != "" && !strings.HasSuffix(outPath, ".png") && !strings.HasSuffix(outPath, ".webp") {
		return fmt.Errorf("output path must end in .png or .webp, got %q", outPath)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Reject invalid flag values before any geometry is built
	probe := NewCamera()
	probe.ImageWidth, probe.SamplesPerPixel, probe.MaxDepth = width, samples, depth
	if err := probe.Validate(); err != nil {
		return err
	}

	buildStart := time.Now()
	sc, err := buildScene(sceneName, model)
	if err != nil {
		return err
	}
	buildTime := time.Since(buildStart)

	cam := sc.Camera
	cam.ImageWidth = width
	cam.SamplesPerPixel = samples
	cam.MaxDepth = depth
	cam.NumWorkers = workers
	cam.Seed = seed
	if err := cam.Validate(); err != nil {
		return err
	}

	buffer, err := renderScene(sc, preview)
	if err != nil {
		return err
	}

	cam.Stats.BuildTime = buildTime
	cam.Stats.Print()

	if err := WriteImage(outPath, buffer, cam.ImageWidth, cam.ImageHeight(), cam.SamplesPerPixel); err != nil {
		return err
	}

	if memprofile != "" {
		f, err := os.Create(memprofile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}

	return nil
}

func buildScene(name, model string) (*Scene, error) {
	switch name {
	case SceneFinal:
		return FinalScene(), nil
	case SceneSimpleLight:
		return SimpleLightScene(), nil
	case SceneMesh:
		return MeshScene(model)
	case SceneInstanceGrid:
		return InstanceGridScene(model)
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// renderScene runs the render, either headless with a terminal cancel key
// or behind a live preview window. With a preview the render runs on worker
// goroutines while the GLFW loop keeps the main thread.
func renderScene(sc *Scene, preview bool) ([]Color, error) {
	cam := sc.Camera

	if !preview {
		stop, err := StartCancelListener(cam.Cancel)
		if err == nil {
			defer stop()
			fmt.Fprintln(os.Stderr, "Press q or Esc to cancel")
		}
		return cam.Render(sc.World)
	}

	pw := NewPreviewWindow(cam.ImageWidth, cam.ImageHeight())
	cam.Progress = pw.Update

	type renderResult struct {
		buffer []Color
		err    error
	}
	resultCh := make(chan renderResult, 1)
	go func() {
		buffer, err := cam.Render(sc.World)
		resultCh <- renderResult{buffer: buffer, err: err}
	}()

	if err := pw.Run(cam.Cancel); err != nil {
		// The render is still the deliverable; a broken preview only
		// loses the window.
		fmt.Fprintf(os.Stderr, "preview unavailable: %v\n", err)
	}

	result := <-resultCh
	return result.buffer, result.err
}
