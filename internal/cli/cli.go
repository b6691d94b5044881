// Package cli implements the tiledbg command-line interface.
//
// The commands render still frames and looping animations of a material
// file, serve frames over HTTP, and export the GPU shader. Logging goes
// through charmbracelet/log, which is also installed as the slog handler
// of the tiledbg library so library and CLI messages share one stream.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/tiledbg"
	"github.com/gogpu/tiledbg/config"
)

const (
	appName = "tiledbg"

	// defaultTileSize is the base tile size when neither the material nor
	// a texture provides one.
	defaultTileSize = 64
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var version = tiledbg.Version

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w and routes library logs to the same
// logger.
func New(w io.Writer, level log.Level) *CLI {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	tiledbg.SetLogger(slog.New(l))
	return &CLI{Logger: l}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Render scrolling tiled background materials",
		Long:         `tiledbg renders a texture repeated across a surface as a rotated, staggered, spaced and scrolling tile pattern.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.shaderCommand())
	root.AddCommand(c.validateCommand())

	return root
}

// material is a loaded material file ready to render.
type material struct {
	file     *config.File
	params   *tiledbg.Params
	textures *tiledbg.TextureSet
	renderer *tiledbg.Renderer
}

// loadMaterial reads a material file, loads its texture and builds the
// renderer. The caller must Close the material.
func (c *CLI) loadMaterial(path string) (*material, error) {
	if path == "" {
		return nil, fmt.Errorf("no material file given (use --config)")
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	textures := tiledbg.NewTextureSet(f.Filter())
	tileSize := float64(defaultTileSize)
	if ref := f.TextureRef(); ref != "" {
		if err := textures.LoadTexture(ref, 0); err != nil {
			return nil, err
		}
		if w, _, ok := textures.Size(ref); ok && w > 0 {
			tileSize = float64(w)
		}
	}

	params, err := f.Params(tileSize)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("material ready",
		"texture", params.Texture(), "period", params.TilePeriod(),
		"scroll_period", params.ScrollPeriod())

	return &material{
		file:     f,
		params:   params,
		textures: textures,
		renderer: tiledbg.NewRenderer(textures, f.RendererOptions()...),
	}, nil
}

func (m *material) Close() {
	m.renderer.Close()
}

// size returns the frame size, preferring positive overrides.
func (m *material) size(width, height int) (int, int) {
	if width <= 0 {
		width = m.file.Render.Width
	}
	if height <= 0 {
		height = m.file.Render.Height
	}
	return width, height
}
