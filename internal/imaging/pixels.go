package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Validate checks that r is non-empty and lies inside bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// PixelOptions controls how an image is flattened for quantization.
type PixelOptions struct {
	// Region limits the pixels to a sub-rectangle. Nil means the whole image.
	Region *Region

	// MaxDimension downsamples the image so neither side exceeds it. Zero
	// keeps the original resolution.
	MaxDimension int

	// Premultiplied emits alpha-premultiplied channels instead of straight
	// alpha.
	Premultiplied bool
}

// PixelBuffer is a tightly packed RGBA8888 buffer, four bytes per pixel in
// row-major order.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
}

// Count returns the number of pixels in the buffer.
func (b *PixelBuffer) Count() int {
	return b.Width * b.Height
}

// Pixels flattens img into an RGBA8888 buffer.
//
// The region, if any, is cropped first and the result is then downsampled
// with a box filter when MaxDimension is set. Straight alpha is produced via
// NRGBA conversion; premultiplied output is produced via RGBA conversion.
//
// Returns an error if the region is invalid for the image bounds.
func Pixels(img image.Image, opts PixelOptions) (*PixelBuffer, error) {
	src := img
	if opts.Region != nil {
		if err := opts.Region.Validate(img.Bounds()); err != nil {
			return nil, err
		}
		src = imaging.Crop(img, opts.Region.Rect())
	}

	if limit := opts.MaxDimension; limit > 0 {
		b := src.Bounds()
		if b.Dx() > limit || b.Dy() > limit {
			src = imaging.Fit(src, limit, limit, imaging.Box)
		}
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if opts.Premultiplied {
		rgba := clone.AsRGBA(src)
		return &PixelBuffer{Pix: packed(rgba.Pix, rgba.Stride, w, h), Width: w, Height: h}, nil
	}
	nrgba := imaging.Clone(src)
	return &PixelBuffer{Pix: packed(nrgba.Pix, nrgba.Stride, w, h), Width: w, Height: h}, nil
}

// packed returns pix with any row padding removed.
func packed(pix []byte, stride, w, h int) []byte {
	row := w * 4
	if stride == row {
		return pix[:row*h]
	}
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		copy(out[y*row:(y+1)*row], pix[y*stride:y*stride+row])
	}
	return out
}
