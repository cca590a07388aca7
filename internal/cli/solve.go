package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	solveFlags
	output string // JSON result file; stdout when empty and --json is set
	json   bool   // print the JSON result instead of the frame table
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Measure and position the children of a layout document",
		Long: `Solve reads a TOML or JSON layout document, resolves its rules and runs
the horizontal and vertical layout passes. The result is printed as a frame
table, or written as JSON with --output or --json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the solved layout as JSON to this file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the solved layout as JSON")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, path string, opts *solveOpts) error {
	logger := loggerFromContext(ctx)

	popts, err := opts.options()
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, path)
	if err != nil {
		return err
	}
	applyDefaults(doc, cfg)

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s...", doc.Name))
	spinner.Start()
	result, err := runner.Solve(ctx, doc, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %s", doc.Name))

	if opts.json {
		return graph.WriteResult(os.Stdout, result.Layout)
	}

	printResult(result)
	if opts.output != "" {
		if err := graph.WriteResultFile(result.Layout, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// printResult prints the solve summary, the frame table and any warnings.
func printResult(result *pipeline.Result) {
	res := result.Layout
	printSuccess("%s %s", StyleTitle.Render(res.Name), StyleDim.Render(res.Direction))
	printStats(sizeString(res.Width, res.Height), result.Stats.ChildCount, len(result.Warnings), result.CacheInfo.SolveHit)
	printKeyValue("Baseline", fmt.Sprint(res.Baseline))
	printKeyValue("Key", res.Key)
	fmt.Println(frameTable(res))
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
}
