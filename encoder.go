package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/deepteams/webp"
)

// frameToImage quantizes an accumulated sample-sum buffer into an RGBA image
func frameToImage(buffer []Color, width, height, samples int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			r, g, b := buffer[j*width+i].ToRGB8(samples)
			offset := img.PixOffset(i, j)
			img.Pix[offset+0] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = b
			img.Pix[offset+3] = 255
		}
	}
	return img
}

// WriteImage encodes the accumulated buffer. An empty path writes a P3
// portable pixmap to standard output; paths ending in .png or .webp write
// the corresponding file format.
func WriteImage(path string, buffer []Color, width, height, samples int) error {
	if path == "" {
		return writePPM(os.Stdout, buffer, width, height, samples)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer file.Close()

	switch {
	case strings.HasSuffix(path, ".png"):
		if err := png.Encode(file, frameToImage(buffer, width, height, samples)); err != nil {
			return fmt.Errorf("png encode: %w", err)
		}
	case strings.HasSuffix(path, ".webp"):
		if err := webp.Encode(file, frameToImage(buffer, width, height, samples), nil); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", path)
	}

	return nil
}

// writePPM streams a plain-text P3 pixmap
func writePPM(w io.Writer, buffer []Color, width, height, samples int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			r, g, b := buffer[j*width+i].ToRGB8(samples)
			fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
		}
	}

	return bw.Flush()
}
