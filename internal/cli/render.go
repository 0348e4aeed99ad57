package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/pipeline"
)

// renderCommand creates the one-step dataset-to-files command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		chartOpts  chartFlags
		renderOpts renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset straight to SVG, PNG, PDF or JSON",
		Long: `Render a dataset straight to SVG, PNG, PDF or JSON.

Equivalent to 'layout' followed by 'visualize'. Both stages are cached, so
re-rendering the same dataset in another format only draws the new format.`,
		Example: `  piechart render examples/browsers.json
  piechart render examples/pets.pie -f svg,png --leader-lines
  piechart render sales.toml --hole 0.5 --percentage -o out/sales.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := chartOpts.options(cmd, cfg.Chart)
			if err := renderOpts.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], renderOpts.output, opts, chartOpts.noCache)
		},
	}

	chartOpts.register(cmd)
	renderOpts.register(cmd)

	return cmd
}

// runRender executes the full pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
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

	spinner := newSpinner(ctx, "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	printStats(len(result.Layout.Slices), result.Stats.External, result.CacheInfo.LayoutHit)
	printLayoutWarnings(result.Layout)
	return nil
}
