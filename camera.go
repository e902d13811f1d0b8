package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRenderCancelled is returned when the render is cancelled before all
// sample tasks have completed; partial results are discarded.
var ErrRenderCancelled = errors.New("render cancelled")

// Camera holds the viewing parameters and drives the render. Each of the
// SamplesPerPixel sample passes is an independent task producing a
// full-resolution one-sample buffer; the final image is their per-pixel sum.
type Camera struct {
	AspectRatio     float64 // Ratio of image width over height
	ImageWidth      int     // Rendered image width in pixel count
	SamplesPerPixel int     // Count of random samples for each pixel
	MaxDepth        int     // Maximum number of ray bounces into scene
	Background      Color   // Scene background color

	VFov     float64 // Vertical view angle (field of view) in degrees
	LookFrom Point   // Point camera is looking from
	LookAt   Point   // Point camera is looking at
	VUp      Point   // Camera-relative "up" direction

	DefocusAngle float64 // Variation angle of rays through each pixel
	FocusDist    float64 // Distance from LookFrom to the plane of perfect focus

	NumWorkers int    // Worker goroutines; 0 means GOMAXPROCS
	Seed       uint64 // Per-render salt mixed into every task seed

	// Progress, when set, is called from the accumulation goroutine after
	// each completed sample with the running sum. The callback must not
	// retain frame beyond the call.
	Progress func(done, total int, frame []Color)

	Stats RenderStats

	imageHeight  int
	center       Point
	pixel00Loc   Point
	pixelDeltaU  Point
	pixelDeltaV  Point
	u, v, w      Point
	defocusDiskU Point
	defocusDiskV Point

	cancelled atomic.Bool
}

// NewCamera returns a camera with the default configuration
func NewCamera() *Camera {
	return &Camera{
		AspectRatio:     DEFAULT_ASPECT_RATIO,
		ImageWidth:      DEFAULT_IMAGE_WIDTH,
		SamplesPerPixel: DEFAULT_SAMPLES,
		MaxDepth:        DEFAULT_MAX_DEPTH,
		Background:      ColorSky,
		VFov:            DEFAULT_VFOV,
		LookFrom:        Point{Z: -1},
		VUp:             Point{Y: 1},
		FocusDist:       10,
	}
}

// Validate rejects configurations the renderer cannot run with. It is
// called before any geometry is built.
func (cam *Camera) Validate() error {
	if cam.ImageWidth <= 0 {
		return fmt.Errorf("image width must be positive, got %d", cam.ImageWidth)
	}
	if cam.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", cam.AspectRatio)
	}
	if cam.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", cam.SamplesPerPixel)
	}
	if cam.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", cam.MaxDepth)
	}
	if cam.FocusDist <= 0 {
		return fmt.Errorf("focus distance must be positive, got %g", cam.FocusDist)
	}
	return nil
}

// ImageHeight returns the derived image height
func (cam *Camera) ImageHeight() int {
	h := int(float64(cam.ImageWidth) / cam.AspectRatio)
	if h < 1 {
		h = 1
	}
	return h
}

// Cancel requests coarse cancellation: no new sample tasks start and the
// render returns ErrRenderCancelled. Tasks already running are not
// preempted.
func (cam *Camera) Cancel() {
	cam.cancelled.Store(true)
}

// initialize derives the viewport geometry from the public configuration
func (cam *Camera) initialize() {
	cam.imageHeight = cam.ImageHeight()
	cam.center = cam.LookFrom

	theta := degreesToRadians(cam.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * cam.FocusDist
	viewportWidth := viewportHeight * (float64(cam.ImageWidth) / float64(cam.imageHeight))

	// Orthonormal camera frame
	cam.w = cam.LookFrom.Sub(cam.LookAt).Normalize()
	cam.u = cam.VUp.Cross(cam.w).Normalize()
	cam.v = cam.w.Cross(cam.u)

	viewportU := cam.u.Scale(viewportWidth)
	viewportV := cam.v.Neg().Scale(viewportHeight)

	cam.pixelDeltaU = viewportU.Scale(1 / float64(cam.ImageWidth))
	cam.pixelDeltaV = viewportV.Scale(1 / float64(cam.imageHeight))

	viewportUpperLeft := cam.center.
		Sub(cam.w.Scale(cam.FocusDist)).
		Sub(viewportU.Scale(0.5)).
		Sub(viewportV.Scale(0.5))
	cam.pixel00Loc = viewportUpperLeft.Add(cam.pixelDeltaU.Add(cam.pixelDeltaV).Scale(0.5))

	defocusRadius := cam.FocusDist * math.Tan(degreesToRadians(cam.DefocusAngle/2))
	cam.defocusDiskU = cam.u.Scale(defocusRadius)
	cam.defocusDiskV = cam.v.Scale(defocusRadius)
}

// Render traces the scene and returns the accumulated sample-sum buffer in
// row-major order (index j*ImageWidth + i). Divide by SamplesPerPixel when
// encoding.
func (cam *Camera) Render(world Hittable) ([]Color, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	cam.initialize()

	numWorkers := cam.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()

	taskQueue := make(chan int, numWorkers*4)
	results := make(chan []Color, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sampleIdx := range taskQueue {
				// Coarse cancellation: refuse to start new tasks
				if cam.cancelled.Load() {
					continue
				}
				results <- cam.renderSample(sampleIdx, world)
			}
		}()
	}

	go func() {
		for i := 0; i < cam.SamplesPerPixel; i++ {
			taskQueue <- i
		}
		close(taskQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Accumulation is the only join barrier; workers own their buffers
	// until they hand them over here.
	accum := make([]Color, cam.ImageWidth*cam.imageHeight)
	done := 0
	for buffer := range results {
		for p := range accum {
			accum[p] = accum[p].Add(buffer[p])
		}
		done++
		fmt.Fprintf(os.Stderr, "\rSamples: %d/%d", done, cam.SamplesPerPixel)
		if cam.Progress != nil {
			cam.Progress(done, cam.SamplesPerPixel, accum)
		}
	}
	fmt.Fprintln(os.Stderr)

	cam.Stats.RenderTime = time.Since(start)
	cam.Stats.SamplesDone = done
	cam.Stats.Workers = numWorkers

	if cam.cancelled.Load() {
		return nil, ErrRenderCancelled
	}

	return accum, nil
}

// renderSample computes one full-resolution buffer at one sample per pixel
// with its own generator
func (cam *Camera) renderSample(sampleIdx int, world Hittable) []Color {
	rng := newTaskRNG(sampleIdx, cam.Seed)
	buffer := make([]Color, cam.ImageWidth*cam.imageHeight)

	for j := 0; j < cam.imageHeight; j++ {
		for i := 0; i < cam.ImageWidth; i++ {
			r := cam.getRay(rng, i, j)
			buffer[j*cam.ImageWidth+i] = cam.rayColor(rng, r, cam.MaxDepth, world)
		}
	}

	return buffer
}

// getRay builds a randomly sampled camera ray for pixel (i, j), jittered
// across the pixel square and originating on the defocus disk when depth of
// field is enabled
func (cam *Camera) getRay(rng *rand.Rand, i, j int) Ray {
	pixelCenter := cam.pixel00Loc.
		Add(cam.pixelDeltaU.Scale(float64(i))).
		Add(cam.pixelDeltaV.Scale(float64(j)))

	px := -0.5 + rng.Float64()
	py := -0.5 + rng.Float64()
	pixelSample := pixelCenter.
		Add(cam.pixelDeltaU.Scale(px)).
		Add(cam.pixelDeltaV.Scale(py))

	rayOrigin := cam.center
	if cam.DefocusAngle > 0 {
		p := randomInUnitDisk(rng)
		rayOrigin = cam.center.
			Add(cam.defocusDiskU.Scale(p.X)).
			Add(cam.defocusDiskV.Scale(p.Y))
	}

	return Ray{Origin: rayOrigin, Direction: pixelSample.Sub(rayOrigin)}
}

// rayColor integrates radiance along a ray by recursive path tracing
func (cam *Camera) rayColor(rng *rand.Rand, r Ray, depth int, world Hittable) Color {
	// Bounce limit reached; no more light is gathered
	if depth <= 0 {
		return ColorBlack
	}

	var rec HitRecord
	if !world.Intersect(r, SHADOW_ACNE_EPSILON, infinity, &rec) {
		return cam.Background
	}

	colorFromEmission := rec.Mat.Emitted(rec.U, rec.V, rec.Point)

	attenuation, scattered, ok := rec.Mat.Scatter(rng, r, &rec)
	if !ok {
		return colorFromEmission
	}

	colorFromScatter := attenuation.Mul(cam.rayColor(rng, scattered, depth-1, world))
	return colorFromEmission.Add(colorFromScatter)
}
