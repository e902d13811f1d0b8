package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "github.com/deepteams/webp"
)

// Texture produces a color for a surface coordinate (u, v) and hit point p
type Texture interface {
	Value(u, v float64, p Point) Color
}

// SolidColor is a constant texture
type SolidColor struct {
	Albedo Color
}

func NewSolidColor(r, g, b float64) SolidColor {
	return SolidColor{Albedo: Color{R: r, G: g, B: b}}
}

func (s SolidColor) Value(u, v float64, p Point) Color {
	return s.Albedo
}

// CheckerTexture alternates two textures on a spatial 3D checkerboard
type CheckerTexture struct {
	InvScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a solid-color checker with the given cell scale
func NewCheckerTexture(scale float64, even, odd Color) CheckerTexture {
	return CheckerTexture{
		InvScale: 1.0 / scale,
		Even:     SolidColor{Albedo: even},
		Odd:      SolidColor{Albedo: odd},
	}
}

func (c CheckerTexture) Value(u, v float64, p Point) Color {
	xInt := int(math.Floor(c.InvScale * p.X))
	yInt := int(math.Floor(c.InvScale * p.Y))
	zInt := int(math.Floor(c.InvScale * p.Z))

	if (xInt+yInt+zInt)%2 == 0 {
		return c.Even.Value(u, v, p)
	}
	return c.Odd.Value(u, v, p)
}

// ImageTexture samples a decoded image by UV, clamping out-of-range
// coordinates and flipping V so image row 0 is the top
type ImageTexture struct {
	img    image.Image
	width  int
	height int
}

// LoadImageTexture decodes a PNG, JPEG or WebP file into a texture
func LoadImageTexture(path string) (*ImageTexture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open texture: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("cannot decode texture %s: %w", path, err)
	}

	bounds := img.Bounds()
	return &ImageTexture{
		img:    img,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}, nil
}

func (t *ImageTexture) Value(u, v float64, p Point) Color {
	if t.height <= 0 {
		// Solid cyan flags a missing image
		return Color{R: 0, G: 1, B: 1}
	}

	u = clamp(u, 0, 1)
	v = 1 - clamp(v, 0, 1)

	x := clampInt(int(u*float64(t.width)), 0, t.width-1)
	y := clampInt(int(v*float64(t.height)), 0, t.height-1)

	bounds := t.img.Bounds()
	r, g, b, _ := t.img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

	const colorScale = 1.0 / 65535.0
	return Color{
		R: float64(r) * colorScale,
		G: float64(g) * colorScale,
		B: float64(b) * colorScale,
	}
}
