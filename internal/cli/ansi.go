package cli

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// ANSI escape codes for 24-bit terminal colors.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	swatchWidth  = 8
)

// swatch returns a solid block of width cells painted with c.
func swatch(c imaging.RGBColor, width int) string {
	if width <= 0 {
		width = swatchWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// labeledSwatch centers text on a block of c, in black or white depending on
// which reads better against it.
func labeledSwatch(c imaging.RGBColor, text string, width int) string {
	if width <= 0 {
		width = swatchWidth
	}

	var fg uint8 = 255
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	if l, _, _ := cf.Lab(); l > 0.6 {
		fg = 0
	}

	if len(text) > width {
		text = text[:width]
	}
	pad := (width - len(text)) / 2
	text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgc := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix)
	return bg + fgc + text + ansiReset
}
