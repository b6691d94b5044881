package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/tiledbg/shader"
)

// shaderOpts holds the command-line flags for the shader command.
type shaderOpts struct {
	spirv    string  // SPIR-V output path; empty prints WGSL
	config   string  // optional material for --uniforms
	time     float64 // elapsed seconds for --uniforms
	uniforms bool    // print the uniform block instead of the source
}

func (c *CLI) shaderCommand() *cobra.Command {
	var opts shaderOpts

	cmd := &cobra.Command{
		Use:   "shader",
		Short: "Print the WGSL shader or write it compiled to SPIR-V",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case opts.uniforms:
				return c.printUniforms(out, &opts)
			case opts.spirv != "":
				return c.writeSPIRV(opts.spirv)
			default:
				_, err := io.WriteString(out, shader.Source)
				return err
			}
		},
	}

	cmd.Flags().StringVar(&opts.spirv, "spirv", "", "write compiled SPIR-V to this file")
	cmd.Flags().BoolVar(&opts.uniforms, "uniforms", false, "hex-dump the uniform block for a material (needs --config)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "material file (TOML)")
	cmd.Flags().Float64Var(&opts.time, "time", 0, "elapsed time in seconds for --uniforms")

	return cmd
}

func (c *CLI) writeSPIRV(path string) error {
	spirv, err := shader.SPIRVBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, spirv, 0o644); err != nil { //nolint:gosec // SPIR-V output is not sensitive
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Logger.Infof("Wrote %d bytes of SPIR-V to %s", len(spirv), path)
	return nil
}

func (c *CLI) printUniforms(w io.Writer, opts *shaderOpts) error {
	m, err := c.loadMaterial(opts.config)
	if err != nil {
		return err
	}
	defer m.Close()

	u := shader.NewUniforms(m.params, opts.time)
	c.Logger.Debug("uniforms", "period", u.Period, "stagger", u.Stagger,
		"spacing", u.Spacing, "scroll_offset", u.ScrollOffset)
	_, err = io.WriteString(w, hex.Dump(u.Bytes()))
	return err
}
