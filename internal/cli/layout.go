package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute a chart layout from a dataset",
		Long: `Compute a chart layout from a dataset.

The dataset is a JSON, TOML or Mermaid pie file, detected by extension
(.json, .toml, .pie, .mmd, .mermaid). The output is a layout.json file (same
format as 'render -f json') holding slice paths, colours, label anchors and
leader lines. Render it with the 'visualize' command.

Results are cached for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Chart)
			return c.runLayout(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// runLayout loads the dataset, computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	ds, err := chart.ReadDatasetFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := chart.WriteLayoutFile(layout, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Slices), layout.External(), cacheHit)
	printLayoutWarnings(layout)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// printLayoutWarnings surfaces non-fatal layout advisories.
func printLayoutWarnings(l chart.Layout) {
	for _, w := range l.Warnings {
		printWarning("%s", w.Message)
	}
}
