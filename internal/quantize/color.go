package quantize

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/palette-mcp/internal/octree"
)

// Color is a non-premultiplied RGBA8888 color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex returns the color as "#RRGGBB". Alpha is not included.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA converts c to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Swatch is one palette entry: an averaged color and the number of source
// pixels that were merged into it.
type Swatch struct {
	Color
	Count uint64 `json:"count"`
}

func swatchOf(b octree.Bucket) Swatch {
	r, g, bl, a := b.Average()
	return Swatch{Color: Color{R: r, G: g, B: bl, A: a}, Count: b.Count}
}

// Saturation returns the HSL saturation of a color whose channels are in
// [0, 1].
//
// Lightness is the weighted approximation (2R + 3G + B) / 6 rather than the
// usual (max + min) / 2. Ranking depends on it, so it must not be replaced.
func Saturation(r, g, b float64) float64 {
	minv := min(r, g, b)
	maxv := max(r, g, b)
	if minv == maxv {
		return 0
	}

	d := maxv - minv
	l := (r + r + b + g + g + g) / 6
	if l > 0.5 {
		return d / (2 - maxv - minv)
	}
	return d / (maxv + minv)
}

// saturationOf ranks a swatch by the saturation of its averaged color.
func saturationOf(s Swatch) float64 {
	return Saturation(float64(s.R)/255, float64(s.G)/255, float64(s.B)/255)
}
