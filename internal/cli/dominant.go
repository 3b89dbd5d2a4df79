package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/imaging"
	"github.com/ironsheep/palette-mcp/internal/quantize"
)

func newDominantCmd() *cobra.Command {
	var opts imageOptions

	cmd := &cobra.Command{
		Use:   "dominant <image>",
		Short: "Print the single most representative color of an image",
		Long: `Print the dominant color of an image: among its most populous color
clusters, the one with the highest saturation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			result, err := imaging.DominantColor(img, opts.pixelOptions(), q)
			if err != nil {
				return err
			}

			return writeDominant(cmd.OutOrStdout(), result, opts.format, opts.showPreview(cmd))
		},
	}

	opts.register(cmd.Flags())
	return cmd
}
