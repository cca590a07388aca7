package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	solveFlags
	kind     string  // frames, horizontal or vertical
	formats  string  // comma-separated output formats
	outDir   string  // directory for the written files
	detailed bool    // show rule and visibility details in dependency graphs
	cols     int     // text grid columns
	rows     int     // text grid rows
	scale    float64 // PNG resolution multiplier
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		kind:  pipeline.KindFrames,
		cols:  pipeline.DefaultTextCols,
		rows:  pipeline.DefaultTextRows,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a solved layout or its rule dependency graph",
		Long: `Render solves a layout document and writes its outputs.

Kinds:
  frames      the solved rectangles (svg, png, text, json)
  horizontal  the horizontal rule dependency graph (dot, svg, png)
  vertical    the vertical rule dependency graph (dot, svg, png)

The text format is printed to stdout when it is the only format requested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "what to render: frames, horizontal, vertical")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated (default svg)")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show rule details in dependency graphs")
	cmd.Flags().IntVar(&opts.cols, "cols", opts.cols, "text grid columns")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "text grid rows")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts *renderOpts) error {
	popts, err := opts.options()
	if err != nil {
		return err
	}
	popts.Kind = opts.kind
	popts.Formats = parseFormats(opts.formats)
	popts.Detailed = opts.detailed
	popts.Cols, popts.Rows, popts.Scale = opts.cols, opts.rows, opts.scale
	if err := popts.ValidateForRender(); err != nil {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", doc.Name))
	spinner.Start()
	result, err := runner.Execute(ctx, doc, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(popts.Formats) == 1 && popts.Formats[0] == pipeline.FormatText {
		fmt.Print(string(result.Artifacts[pipeline.FormatText]))
		return nil
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Rendered %s", StyleTitle.Render(doc.Name))
	printStats(sizeString(result.Layout.Width, result.Layout.Height), result.Stats.ChildCount, len(result.Warnings), result.CacheInfo.RenderHit)
	for _, f := range formats {
		out := filepath.Join(opts.outDir, outputName(doc.Name, popts.Kind, f))
		if err := os.WriteFile(out, result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// outputName is <name>.<ext> for frames and <name>.<kind>.<ext> for
// dependency graphs.
func outputName(name, kind, format string) string {
	ext := format
	if format == pipeline.FormatText {
		ext = "txt"
	}
	if kind == pipeline.KindFrames {
		return name + "." + ext
	}
	return name + "." + kind + "." + ext
}
