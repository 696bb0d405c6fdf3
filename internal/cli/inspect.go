package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/pipeline"
)

// inspectCommand creates the inspect command for snapshot summaries.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		level       int
		gapsOnly    bool
		tableName   string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Summarize snapshot coverage, phases, and gaps",
		Long: `Summarize a snapshot without compiling it.

Prints taxonomy node counts, coverage gaps, phase distribution, and a
strength histogram. With --level, lists per-node measure counts for that
level in chart order - the same aggregation the coverage layer renders.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Dataset: c.Config.Dataset,
				Table:   c.Config.Table,
				Inline:  true, // no data URL needed for a summary
			}
			if len(args) > 0 {
				opts.Dataset = args[0]
			}
			if cmd.Flags().Changed("table") {
				opts.Table = tableName
			}
			return c.runInspect(cmd, opts, level, gapsOnly, interactive)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 0, "list per-node coverage for a taxonomy level (1-3)")
	cmd.Flags().BoolVar(&gapsOnly, "gaps", false, "with --level, list only nodes without measures")
	cmd.Flags().StringVar(&tableName, "table", "", "table name for SQLite snapshots (default \"dataset\")")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse per-node coverage interactively")

	return cmd
}

// runInspect loads the snapshot and prints summaries.
func (c *CLI) runInspect(cmd *cobra.Command, opts pipeline.Options, level int, gapsOnly, interactive bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(loggerFromContext(cmd.Context()))
	ds, err := runner.Load(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d rows", len(ds.Rows)))

	if err := ds.Validate(); err != nil {
		printWarning("Snapshot fails validation and will not compile")
		printDetail("%v", err)
		printNewline()
	}

	stats := dataset.Compute(ds)

	if interactive {
		model := NewCoverageModel(stats)
		if level > 0 {
			model.Level = level
		}
		model.GapsOnly = gapsOnly
		_, err := tea.NewProgram(model).Run()
		return err
	}

	if level > 0 {
		return printCoverage(stats, level, gapsOnly)
	}

	fmt.Println(StyleTitle.Render("Snapshot " + opts.Dataset))
	printNewline()
	printKeyValue("Format", dataset.Format(opts.Dataset))
	printKeyValue("Rows", strconv.Itoa(stats.Rows))
	printKeyValue("Measures", strconv.Itoa(stats.Measures))
	printKeyValue("Sources", strconv.Itoa(stats.Sources))
	printNewline()

	printLevelTable(stats)
	printNewline()
	printPhaseCounts(stats)
	printNewline()
	printStrengthHistogram(stats)
	return nil
}

// printLevelTable prints the per-level node and gap counts.
func printLevelTable(stats *dataset.Stats) {
	t := table.New().
		Headers("LEVEL", "NODES", "GAPS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleDim
			}
			if col > 0 {
				return StyleValue
			}
			return StyleHighlight
		})
	titles := []string{"1 - Service dimension", "2 - Service area", "3 - Measure topic"}
	for i, ls := range stats.Levels {
		t.Row(titles[i], strconv.Itoa(ls.Nodes), strconv.Itoa(ls.Gaps))
	}
	fmt.Println(t)
}

// printPhaseCounts prints mapping counts per phase in pathway order.
func printPhaseCounts(stats *dataset.Stats) {
	fmt.Println(StyleDim.Render("Phases"))
	for i, p := range dataset.Phases {
		printKeyValue(string(p), strconv.Itoa(stats.PhaseCounts[i]))
	}
}

// printStrengthHistogram prints the ten-bucket strength histogram as bars.
func printStrengthHistogram(stats *dataset.Stats) {
	fmt.Println(StyleDim.Render("Strength"))

	max := 0
	for _, n := range stats.StrengthBuckets {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		printDetail("no strength scores")
		return
	}
	const width = 30
	for i, n := range stats.StrengthBuckets {
		bar := strings.Repeat("█", n*width/max)
		label := fmt.Sprintf("%.1f-%.1f", float64(i)/10, float64(i+1)/10)
		fmt.Printf("  %s %s %d\n", StyleDim.Render(label), StyleHighlight.Render(bar), n)
	}
}

// printCoverage lists per-node measure counts for one level, in chart order.
func printCoverage(stats *dataset.Stats, level int, gapsOnly bool) error {
	nodes := stats.Coverage(level)
	if nodes == nil {
		return fmt.Errorf("level must be 1, 2, or 3, got %d", level)
	}

	shown := 0
	for _, node := range nodes {
		if gapsOnly && node.Measures > 0 {
			continue
		}
		shown++
		count := strconv.Itoa(node.Measures)
		if node.Measures == 0 {
			count = StyleWarning.Render("gap")
		}
		fmt.Println(StyleValue.Render(node.Name) + " " + StyleDim.Render("·") + " " + count)
	}
	if gapsOnly && shown == 0 {
		printSuccess("No gaps at level %d", level)
	}
	return nil
}
