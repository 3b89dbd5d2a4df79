package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/imaging"
	"github.com/ironsheep/palette-mcp/internal/quantize"
)

func newPaletteCmd() *cobra.Command {
	var (
		opts   imageOptions
		colors int
	)

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Reduce an image to a small color palette",
		Long: `Reduce an image to at most N colors with octree quantization.

Colors are printed most common first, each with its share of the analyzed
pixels.

Examples:
  # 16 colors (default)
  palette-mcp palette wallpaper.png

  # 8 colors from the top-left 200x100 corner, as JSON
  palette-mcp palette -c 8 --region 0,0,200,100 -f json wallpaper.png

  # Downsample large photos first
  palette-mcp palette --max-dimension 256 photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if colors < quantize.MinColors {
				return fmt.Errorf("colors must be at least %d, got %d", quantize.MinColors, colors)
			}
			if err := opts.validate(); err != nil {
				return err
			}

			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}

			q := quantize.New(quantize.WithLogger(logger.Named("quantize")))
			result, err := imaging.ExtractPalette(img, colors, opts.pixelOptions(), q)
			if err != nil {
				return err
			}
			logger.Debug("palette extracted", "path", args[0], "colors", len(result.Colors), "pixels", result.PixelCount)

			return writePalette(cmd.OutOrStdout(), result, opts.format, opts.showPreview(cmd))
		},
	}

	cmd.Flags().IntVarP(&colors, "colors", "c", 16, fmt.Sprintf("maximum number of colors (at least %d)", quantize.MinColors))
	opts.register(cmd.Flags())
	return cmd
}
