package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// RENDERER TESTS
// ============================================================================

func testCamera(width, samples int) *Camera {
	cam := NewCamera()
	cam.ImageWidth = width
	cam.AspectRatio = 1
	cam.SamplesPerPixel = samples
	cam.MaxDepth = 10
	cam.VFov = 40
	cam.LookFrom = Point{Z: 5}
	cam.LookAt = Point{}
	cam.FocusDist = 5
	cam.NumWorkers = 2
	return cam
}

func TestCameraValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Camera)
	}{
		{"ZeroWidth", func(c *Camera) { c.ImageWidth = 0 }},
		{"NegativeWidth", func(c *Camera) { c.ImageWidth = -100 }},
		{"ZeroAspect", func(c *Camera) { c.AspectRatio = 0 }},
		{"ZeroSamples", func(c *Camera) { c.SamplesPerPixel = 0 }},
		{"NegativeDepth", func(c *Camera) { c.MaxDepth = -1 }},
		{"ZeroFocusDist", func(c *Camera) { c.FocusDist = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := testCamera(16, 1)
			tc.mutate(cam)
			assert.Error(t, cam.Validate())

			_, err := cam.Render(NewHittableList())
			assert.Error(t, err)
		})
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, testCamera(16, 1).Validate())
	})
}

func TestCameraImageHeight(t *testing.T) {
	cam := NewCamera()
	cam.ImageWidth = 640
	cam.AspectRatio = 16.0 / 9.0
	assert.Equal(t, 360, cam.ImageHeight())

	// Extreme aspect ratios clamp to at least one row
	cam.AspectRatio = 10000
	assert.Equal(t, 1, cam.ImageHeight())
}

func TestRenderEmptyScene(t *testing.T) {
	cam := testCamera(8, 3)
	cam.Background = Color{0.25, 0.5, 0.75}

	buffer, err := cam.Render(NewHittableList())
	require.NoError(t, err)
	require.Len(t, buffer, 8*8)

	// Every sample of every pixel misses, so each accumulated pixel is
	// exactly samples * background
	for p, c := range buffer {
		assert.InDelta(t, 0.75, c.R, 1e-12, "pixel %d", p)
		assert.InDelta(t, 1.5, c.G, 1e-12, "pixel %d", p)
		assert.InDelta(t, 2.25, c.B, 1e-12, "pixel %d", p)
	}
}

func TestRenderEmissiveSphere(t *testing.T) {
	// A pure emitter over a black background: the center pixel must carry
	// the emitter's radiance, the corners stay black
	world := NewHittableList()
	world.Add(NewSphere(Point{}, 1, NewDiffuseLight(Color{2, 2, 2})))

	cam := testCamera(33, 1)
	cam.Background = ColorBlack

	buffer, err := cam.Render(world)
	require.NoError(t, err)

	center := buffer[16*33+16]
	assert.InDelta(t, 2.0, center.R, 1e-12)

	corner := buffer[0]
	assert.Equal(t, 0.0, corner.R)
}

func TestRenderDeterministicWithSeed(t *testing.T) {
	world := NewHittableList()
	world.Add(NewSphere(Point{}, 1, NewLambertian(Color{0.5, 0.5, 0.5})))

	render := func() []Color {
		cam := testCamera(16, 1)
		cam.Seed = 42
		buffer, err := cam.Render(world)
		require.NoError(t, err)
		return buffer
	}

	first := render()
	second := render()
	for p := range first {
		require.Equal(t, first[p], second[p], "pixel %d differs", p)
	}
}

func TestRenderCancellation(t *testing.T) {
	world := NewHittableList()
	world.Add(NewSphere(Point{}, 1, NewLambertian(Color{0.5, 0.5, 0.5})))

	cam := testCamera(16, 50)
	cam.Cancel()

	buffer, err := cam.Render(world)
	assert.ErrorIs(t, err, ErrRenderCancelled)
	assert.Nil(t, buffer)
}

func TestRenderProgressCallback(t *testing.T) {
	cam := testCamera(4, 5)

	var calls int
	var lastDone int
	cam.Progress = func(done, total int, frame []Color) {
		calls++
		lastDone = done
		assert.Equal(t, 5, total)
		assert.Len(t, frame, 16)
	}

	_, err := cam.Render(NewHittableList())
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, lastDone)
}

func TestRenderAccumulatesAcrossSamples(t *testing.T) {
	// With a hit-everything emissive sphere enclosing the camera the
	// accumulated value scales
	// linearly with the sample count
	world := NewHittableList()
	world.Add(NewSphere(Point{}, 100, NewDiffuseLight(Color{1, 1, 1})))

	cam := testCamera(4, 7)
	cam.Background = ColorBlack

	buffer, err := cam.Render(world)
	require.NoError(t, err)
	for _, c := range buffer {
		assert.InDelta(t, 7.0, c.R, 1e-12)
	}
}
