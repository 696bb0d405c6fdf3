package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/careatlas/pkg/pipeline"
	"github.com/matzehuels/careatlas/pkg/tree"
)

// treeCommand creates the tree command for rendering the taxonomy hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		format   string
		counts   bool
		maxLevel int
	)

	cmd := &cobra.Command{
		Use:   "tree [dataset]",
		Short: "Render the taxonomy hierarchy as DOT, SVG, or PNG",
		Long: `Render the snapshot's three-level taxonomy as a node-link hierarchy.

This is an auditing view of the snapshot's structure: with --counts each
node carries its mapped-measure count and gap nodes are highlighted, which
makes missing coverage easy to spot before compiling.

SVG and PNG are rendered in-process; no graphviz installation is needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Dataset: c.Config.Dataset,
				Table:   c.Config.Table,
				Inline:  true, // no data URL needed for a structure view
			}
			if len(args) > 0 {
				opts.Dataset = args[0]
			}
			return c.runTree(cmd, opts, tree.Options{Counts: counts, MaxLevel: maxLevel}, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for dot)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&counts, "counts", false, "annotate nodes with measure counts and highlight gaps")
	cmd.Flags().IntVar(&maxLevel, "max-level", 0, "prune the tree below this level (1-3)")

	return cmd
}

// runTree loads the snapshot and writes the rendered tree.
func (c *CLI) runTree(cmd *cobra.Command, opts pipeline.Options, treeOpts tree.Options, output, format string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ds, err := runner.Load(cmd.Context(), opts)
	if err != nil {
		return err
	}

	dot := tree.ToDOT(ds, treeOpts)

	var data []byte
	switch strings.ToLower(format) {
	case "dot":
		data = []byte(dot)
	case "svg":
		if data, err = tree.RenderSVG(dot); err != nil {
			return err
		}
	case "png":
		if data, err = tree.RenderPNG(dot); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}

	if output == "" {
		if format != "dot" {
			output = "taxonomy." + format
		} else {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered taxonomy tree")
	printFile(output)
	return nil
}
