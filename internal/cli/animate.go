package cli

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/tiledbg"
)

const (
	defaultFrames = 60
	defaultFPS    = 30
)

// animateOpts holds the command-line flags for the animate command.
type animateOpts struct {
	config string // material file
	output string // GIF output path
	frames int    // frame count
	fps    int    // playback rate
	width  int    // frame width override
	height int    // frame height override
}

func (c *CLI) animateCommand() *cobra.Command {
	opts := animateOpts{
		output: "tiledbg.gif",
		frames: defaultFrames,
		fps:    defaultFPS,
	}

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render one scroll loop of a material to an animated GIF",
		Long: `Render frames evenly spaced over one scroll period so the GIF loops
seamlessly. Materials that never repeat exactly render frames/fps seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.frames <= 0 || opts.fps <= 0 {
				return fmt.Errorf("--frames and --fps must be positive")
			}
			return c.runAnimate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "material file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output GIF file")
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "number of frames")
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "frames per second")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width (overrides the material)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height (overrides the material)")

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, opts *animateOpts) error {
	m, err := c.loadMaterial(opts.config)
	if err != nil {
		return err
	}
	defer m.Close()

	start := time.Now()
	w, h := m.size(opts.width, opts.height)
	times := tiledbg.FrameTimes(m.params, opts.frames, float64(opts.frames)/float64(opts.fps))
	frames, err := m.renderer.RenderFrames(ctx, m.params, w, h, times)
	if err != nil {
		return err
	}
	c.Logger.Debug("frames rendered", "count", len(frames), "scroll_period", m.params.ScrollPeriod())

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o750); err != nil {
		return err
	}
	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := encodeGIF(out, frames, opts.fps); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	c.Logger.Infof("Rendered %d frames (%dx%d) to %s (%s)", len(frames), w, h, opts.output,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// encodeGIF writes frames as a looping GIF, dithered to the Plan 9 palette.
func encodeGIF(w io.Writer, frames []*tiledbg.Pixmap, fps int) error {
	delay := int(math.Round(100 / float64(fps)))
	anim := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		b := f.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		xdraw.FloydSteinberg.Draw(pal, b, f.ToImage(), b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
