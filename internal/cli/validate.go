package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
)

func (c *CLI) validateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a material file and print the resolved parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMaterial(path)
			if err != nil {
				return err
			}
			defer m.Close()
			return printSummary(cmd.OutOrStdout(), m)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "material file (TOML)")

	return cmd
}

func printSummary(w io.Writer, m *material) error {
	p := m.params
	tint := p.Tint()
	width, height := m.size(0, 0)

	loop := "never repeats"
	if d := p.ScrollPeriod(); d > 0 {
		loop = fmt.Sprintf("%.4gs", d)
	} else if p.Scroll().X == 0 && p.Scroll().Y == 0 {
		loop = "static"
	}
	texture := string(p.Texture())
	if texture == "" {
		texture = "(none)"
	}

	_, err := fmt.Fprintf(w, `texture   %s
tint      rgba(%.3f, %.3f, %.3f, %.3f)
tile      %.4g px (base %.4g, scale %.4g)
rotation  %.4g deg
stagger   %.4g
spacing   %.4g
scroll    (%.4g, %.4g) px/s, loop %s
frame     %dx%d
`,
		texture,
		tint.R, tint.G, tint.B, tint.A,
		p.TilePeriod(), p.BaseTileSize(), p.Scale(),
		p.Rotation()*180/math.Pi,
		p.Stagger(),
		p.Spacing(),
		p.Scroll().X, p.Scroll().Y, loop,
		width, height)
	return err
}
