package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/tiledbg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config string  // material file
	output string  // PNG output path
	time   float64 // elapsed seconds
	width  int     // frame width override
	height int     // frame height override
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: "tiledbg.png"}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of a material to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "material file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG file")
	cmd.Flags().Float64Var(&opts.time, "time", 0, "elapsed time in seconds")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width (overrides the material)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height (overrides the material)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	m, err := c.loadMaterial(opts.config)
	if err != nil {
		return err
	}
	defer m.Close()

	start := time.Now()
	w, h := m.size(opts.width, opts.height)
	pm := tiledbg.NewPixmap(w, h)
	if err := m.renderer.Render(ctx, pm, m.params, opts.time); err != nil {
		return err
	}
	if err := pm.SavePNG(opts.output); err != nil {
		return err
	}

	c.Logger.Infof("Rendered %dx%d frame to %s (%s)", w, h, opts.output,
		time.Since(start).Round(time.Millisecond))
	return nil
}
