package quantize

import "errors"

// defaultQuantizer backs the buffer-oriented entry points.
var defaultQuantizer = New()

// GetPalette fills colors with at most *numColors RGBA quads extracted from
// the first pixelCount pixels of pixels, and stores the number of quads
// written back into *numColors.
//
// colors must hold at least *numColors*4 bytes. Every byte after the last
// written quad is zeroed.
//
// If *numColors is below MinColors the call does nothing and returns
// ErrTooFewColors; neither colors nor *numColors is touched. A pixelCount of
// zero writes no colors and sets *numColors to zero.
func GetPalette(pixels []byte, pixelCount int, colors []byte, numColors *int) error {
	if *numColors < MinColors {
		return ErrTooFewColors
	}
	if pixelCount < 0 || len(pixels) < pixelCount*bytesPerPixel || len(colors) < *numColors*bytesPerPixel {
		return ErrShortBuffer
	}

	swatches, err := defaultQuantizer.Palette(pixels[:pixelCount*bytesPerPixel], *numColors)
	if err != nil {
		return err
	}

	clear(colors)
	for i, s := range swatches {
		c := colors[i*bytesPerPixel:]
		c[0], c[1], c[2], c[3] = s.R, s.G, s.B, s.A
	}
	*numColors = len(swatches)
	return nil
}

// GetDominantColor writes the dominant color of the first pixelCount pixels
// into the first four bytes of color.
//
// A pixelCount of zero writes transparent black and returns ErrNoPixels.
func GetDominantColor(pixels []byte, pixelCount int, color []byte) error {
	if pixelCount < 0 || len(pixels) < pixelCount*bytesPerPixel || len(color) < bytesPerPixel {
		return ErrShortBuffer
	}

	c, err := defaultQuantizer.DominantColor(pixels[:pixelCount*bytesPerPixel])
	if err != nil && !errors.Is(err, ErrNoPixels) {
		return err
	}
	color[0], color[1], color[2], color[3] = c.R, c.G, c.B, c.A
	return err
}
