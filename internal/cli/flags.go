package cli

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// Output formats accepted by --format.
const (
	formatHex  = "hex"
	formatRGB  = "rgb"
	formatJSON = "json"
)

// regionValue is a pflag.Value parsing "x1,y1,x2,y2".
type regionValue struct {
	region *imaging.Region
}

var _ pflag.Value = (*regionValue)(nil)

func (v *regionValue) String() string {
	if v.region == nil {
		return ""
	}
	r := v.region
	return fmt.Sprintf("%d,%d,%d,%d", r.X1, r.Y1, r.X2, r.Y2)
}

func (v *regionValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("region must be x1,y1,x2,y2, got %q", s)
	}
	var n [4]int
	for i, p := range parts {
		val, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid region coordinate %q: %w", p, err)
		}
		n[i] = val
	}
	v.region = &imaging.Region{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3]}
	return nil
}

func (v *regionValue) Type() string {
	return "region"
}

// imageOptions holds the flags shared by the palette and dominant commands.
type imageOptions struct {
	region        regionValue
	maxDimension  int
	premultiplied bool
	format        string
	preview       bool
}

func (o *imageOptions) register(fs *pflag.FlagSet) {
	fs.Var(&o.region, "region", "analyze only this region, as x1,y1,x2,y2 (x2/y2 exclusive)")
	fs.IntVar(&o.maxDimension, "max-dimension", 0, "downsample so neither side exceeds this many pixels (0 = off)")
	fs.BoolVar(&o.premultiplied, "premultiplied", false, "quantize alpha-premultiplied channels")
	fs.StringVarP(&o.format, "format", "f", formatHex, "output format (hex, rgb, json)")
	fs.BoolVar(&o.preview, "preview", false, "show color swatches (default: on when stdout is a terminal)")
}

func (o *imageOptions) validate() error {
	switch o.format {
	case formatHex, formatRGB, formatJSON:
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", o.format)
	}
	if o.maxDimension < 0 {
		return fmt.Errorf("max-dimension must be >= 0, got %d", o.maxDimension)
	}
	return nil
}

func (o *imageOptions) pixelOptions() imaging.PixelOptions {
	return imaging.PixelOptions{
		Region:        o.region.region,
		MaxDimension:  o.maxDimension,
		Premultiplied: o.premultiplied,
	}
}

// showPreview reports whether swatches should be drawn. An explicit
// --preview wins; otherwise swatches are drawn only for a terminal.
func (o *imageOptions) showPreview(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("preview") {
		return o.preview
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func loadImage(path string) (image.Image, error) {
	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return img, nil
}
