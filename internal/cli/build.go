package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/careatlas/pkg/pipeline"
)

// buildCommand creates the build command for compiling snapshots.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		dataURL string
		inline  bool
		noCache bool
		refresh bool
		table   string
	)

	cmd := &cobra.Command{
		Use:   "build [dataset]",
		Short: "Compile a snapshot into a chart document",
		Long: `Compile a care-taxonomy snapshot into a single interactive chart document.

The snapshot is a flat CSV or SQLite table joining taxonomy nodes at three
levels with their mapped measures. The compiled document stacks one chart
per level, linked by interval brushes, with per-level legend filtering and
a switchable sort order.

By default the document references the snapshot by URL; pass --inline to
embed the rows for a self-contained document.

Results are cached locally keyed by snapshot content; identical inputs are
served from the cache unless --refresh is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Dataset: c.Config.Dataset,
				Table:   c.Config.Table,
				DataURL: c.Config.DataURL,
				Inline:  c.Config.Inline,
				Refresh: refresh,
			}
			if len(args) > 0 {
				opts.Dataset = args[0]
			}
			if cmd.Flags().Changed("data-url") {
				opts.DataURL = dataURL
			}
			if cmd.Flags().Changed("inline") {
				opts.Inline = inline
			}
			if cmd.Flags().Changed("table") {
				opts.Table = table
			}
			if opts.DataURL == "" && !opts.Inline {
				// A URL-mode document rendered next to its snapshot is the
				// common case; default to the snapshot's own file name.
				opts.DataURL = filepath.Base(opts.Dataset)
			}

			out := output
			if out == "" {
				out = c.Config.Output
			}
			if out == "" {
				out = pipeline.DefaultOutput
			}
			return c.runBuild(cmd.Context(), opts, out, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default "+pipeline.DefaultOutput+")")
	cmd.Flags().StringVar(&dataURL, "data-url", "", "dataset URL embedded in the document (default: snapshot file name)")
	cmd.Flags().BoolVar(&inline, "inline", false, "embed snapshot rows instead of referencing a URL")
	cmd.Flags().StringVar(&table, "table", "", "table name for SQLite snapshots (default \"dataset\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompile even if a cached document exists")

	return cmd
}

// runBuild executes the pipeline and writes the document.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Compiling %s...", opts.Dataset))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, result.Encoded, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", output, err)
	}

	printSuccess("Compiled %s", opts.Dataset)
	printFile(output)
	rows, measures := 0, 0
	if result.Stats != nil {
		rows = result.Stats.Rows
		measures = result.Stats.Measures
	}
	printStats(rows, measures, result.FromCache)
	printNewline()
	printNextStep("Preview it", fmt.Sprintf("%s serve %s", appName, opts.Dataset))
	return nil
}
