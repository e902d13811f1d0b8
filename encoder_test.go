package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// ENCODER TESTS
// ============================================================================

func TestColorToRGB8(t *testing.T) {
	t.Run("GammaAndScale", func(t *testing.T) {
		// Sum of 4 samples of 0.25 averages to 0.25, gamma 2 -> 0.5
		c := Color{R: 1, G: 0, B: 4}
		r, g, b := c.ToRGB8(4)
		assert.Equal(t, uint8(128), r)
		assert.Equal(t, uint8(0), g)
		assert.Equal(t, uint8(255), b)
	})

	t.Run("ClampsOverbright", func(t *testing.T) {
		r, _, _ := Color{R: 100}.ToRGB8(1)
		assert.Equal(t, uint8(255), r)
	})

	t.Run("NegativeClampsToZero", func(t *testing.T) {
		r, _, _ := Color{R: -1}.ToRGB8(1)
		assert.Equal(t, uint8(0), r)
	})
}

func TestWritePPM(t *testing.T) {
	buffer := []Color{
		{R: 1}, {G: 1},
		{B: 1}, {R: 1, G: 1, B: 1},
	}

	var out bytes.Buffer
	require.NoError(t, writePPM(&out, buffer, 2, 2, 1))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "P3", lines[0])
	assert.Equal(t, "2 2", lines[1])
	assert.Equal(t, "255", lines[2])
	assert.Equal(t, "255 0 0", lines[3])
	assert.Equal(t, "0 255 0", lines[4])
	assert.Equal(t, "255 255 255", lines[6])
}

func TestWriteImagePNG(t *testing.T) {
	buffer := make([]Color, 4*3)
	for i := range buffer {
		buffer[i] = Color{R: 0.5, G: 0.25, B: 1}
	}

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WriteImage(path, buffer, 4, 3, 1))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestWriteImageRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	err := WriteImage(path, make([]Color, 1), 1, 1, 1)
	assert.Error(t, err)
}

func TestFrameToImageOrientation(t *testing.T) {
	// Row-major buffer: the first entry is the top-left pixel
	buffer := []Color{
		{R: 1}, {},
		{}, {B: 1},
	}

	img := frameToImage(buffer, 2, 2, 1)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.NotZero(t, r)
	_, _, b, _ := img.At(1, 1).RGBA()
	assert.NotZero(t, b)
	r, _, _, _ = img.At(1, 0).RGBA()
	assert.Zero(t, r)
}
