package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sugawarayuuta/sonnet"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

func writePalette(w io.Writer, p *imaging.PaletteResult, format string, preview bool) error {
	if format == formatJSON {
		return writeJSON(w, p)
	}
	for _, e := range p.Colors {
		line := colorText(e.Color, format)
		if preview {
			line = swatch(e.Color.RGB, swatchWidth) + "  " + line
		}
		if _, err := fmt.Fprintf(w, "%s  %6.2f%%\n", line, e.Percentage); err != nil {
			return err
		}
	}
	return nil
}

func writeDominant(w io.Writer, d *imaging.DominantColorResult, format string, preview bool) error {
	if format == formatJSON {
		return writeJSON(w, d)
	}
	line := colorText(d.Color, format)
	if preview {
		line = labeledSwatch(d.Color.RGB, d.Color.Hex, 2*swatchWidth) + "  " + line
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// colorText renders c as "#RRGGBB" or "rgb(r, g, b)". Translucent colors
// carry their alpha.
func colorText(c imaging.ColorResult, format string) string {
	if format == formatRGB {
		if c.RGBA.A != 255 {
			return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.RGBA.R, c.RGBA.G, c.RGBA.B, c.RGBA.A)
		}
		return fmt.Sprintf("rgb(%d, %d, %d)", c.RGB.R, c.RGB.G, c.RGB.B)
	}
	if c.RGBA.A != 255 {
		return fmt.Sprintf("%s%02X", c.Hex, c.RGBA.A)
	}
	return c.Hex
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := sonnet.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
