package imaging

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/ironsheep/palette-mcp/internal/quantize"
)

// PaletteEntry is one quantized color and its share of the analyzed pixels.
type PaletteEntry struct {
	Color      ColorResult `json:"color"`
	Count      uint64      `json:"count"`      // Pixels merged into this color
	Percentage float64     `json:"percentage"` // Share of analyzed pixels (0-100)
}

// PaletteResult contains the palette extracted from an image or region.
//
// Colors are sorted by population in descending order (most common first).
type PaletteResult struct {
	Colors     []PaletteEntry `json:"colors"`
	Requested  int            `json:"requested"`   // Maximum palette size asked for
	PixelCount int            `json:"pixel_count"` // Pixels analyzed after crop/downsample
	Width      int            `json:"width"`       // Width of the analyzed buffer
	Height     int            `json:"height"`      // Height of the analyzed buffer
}

// ExtractPalette reduces an image (or a region of it) to at most count colors
// with octree quantization.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors. Must be at least quantize.MinColors.
//   - opts: Region, downsampling and alpha handling for the pixel buffer.
//   - q: The quantizer to run. Nil uses a default quantizer.
//
// Returns:
//   - *PaletteResult: Colors sorted by population, with ties kept in octree
//     traversal order.
//   - error: Non-nil for an invalid region, a count below the minimum, or a
//     quantizer failure.
//
// An empty region yields an empty palette rather than an error.
func ExtractPalette(img image.Image, count int, opts PixelOptions, q *quantize.Quantizer) (*PaletteResult, error) {
	if q == nil {
		q = quantize.New()
	}

	buf, err := Pixels(img, opts)
	if err != nil {
		return nil, err
	}

	swatches, err := q.Palette(buf.Pix, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette: %w", err)
	}

	slices.SortStableFunc(swatches, func(a, b quantize.Swatch) int {
		return cmp.Compare(b.Count, a.Count)
	})

	total := buf.Count()
	entries := make([]PaletteEntry, len(swatches))
	for i, s := range swatches {
		entries[i] = PaletteEntry{
			Color:      NewColorResult(s.Color),
			Count:      s.Count,
			Percentage: float64(s.Count) * 100 / float64(total),
		}
	}

	return &PaletteResult{
		Colors:     entries,
		Requested:  count,
		PixelCount: total,
		Width:      buf.Width,
		Height:     buf.Height,
	}, nil
}

// DominantColorResult contains the single most representative color.
type DominantColorResult struct {
	Color      ColorResult `json:"color"`
	PixelCount int         `json:"pixel_count"` // Pixels analyzed after crop/downsample
}

// DominantColor picks the most representative color of an image or region.
//
// Selection favors population first and then saturation among the most
// populous clusters; see quantize.Quantizer.DominantColor.
//
// Returns an error wrapping quantize.ErrNoPixels if the analyzed buffer is
// empty.
func DominantColor(img image.Image, opts PixelOptions, q *quantize.Quantizer) (*DominantColorResult, error) {
	if q == nil {
		q = quantize.New()
	}

	buf, err := Pixels(img, opts)
	if err != nil {
		return nil, err
	}

	c, err := q.DominantColor(buf.Pix)
	if err != nil {
		if errors.Is(err, quantize.ErrNoPixels) {
			return nil, fmt.Errorf("image region has no pixels: %w", err)
		}
		return nil, fmt.Errorf("failed to select dominant color: %w", err)
	}

	return &DominantColorResult{
		Color:      NewColorResult(c),
		PixelCount: buf.Count(),
	}, nil
}
