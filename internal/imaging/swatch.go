package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// Default size of a rendered palette strip.
const (
	DefaultSwatchWidth  = 512
	DefaultSwatchHeight = 64
)

// SwatchImage is a palette rendered as a PNG strip.
type SwatchImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderSwatches draws the palette as side-by-side vertical bars, each as
// wide as its share of the pixels. Bars follow the order of colors.
//
// Zero width or height falls back to the defaults. An empty palette renders
// a transparent strip.
func RenderSwatches(colors []PaletteEntry, width, height int) (*SwatchImage, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid swatch size %dx%d", width, height)
	}
	if width == 0 {
		width = DefaultSwatchWidth
	}
	if height == 0 {
		height = DefaultSwatchHeight
	}

	strip := imaging.New(width, height, color.NRGBA{})

	var total, cum uint64
	for _, e := range colors {
		total += e.Count
	}
	for _, e := range colors {
		if total == 0 {
			break
		}
		x0 := int(cum * uint64(width) / total)
		cum += e.Count
		x1 := int(cum * uint64(width) / total)
		if x1 == x0 {
			continue
		}
		c := e.Color.RGBA
		bar := imaging.New(x1-x0, height, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		strip = imaging.Paste(strip, bar, image.Pt(x0, 0))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, strip); err != nil {
		return nil, fmt.Errorf("failed to encode swatch image: %w", err)
	}

	return &SwatchImage{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
