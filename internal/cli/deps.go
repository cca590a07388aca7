package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/pipeline"
	"github.com/matzehuels/relayout/pkg/render/nodelink"
)

// depsOpts holds the command-line flags for the deps command.
type depsOpts struct {
	axis      string
	direction string
	targetSDK int
	dot       bool
	detailed  bool
}

// depsCommand creates the deps command, which prints the rule dependency
// graph of one axis.
func (c *CLI) depsCommand() *cobra.Command {
	opts := depsOpts{axis: graph.AxisHorizontal}

	cmd := &cobra.Command{
		Use:   "deps [file]",
		Short: "Print the rule dependency graph of a layout document",
		Long: `Deps resolves the rules of a layout document and prints, for one axis,
which child depends on which sibling. Logical start/end rules are shown
after resolution, so --direction changes the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDeps(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.axis, "axis", "a", opts.axis, "axis: horizontal or vertical")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "layout direction: ltr or rtl")
	cmd.Flags().IntVar(&opts.targetSDK, "target-sdk", 0, "platform level selecting legacy behaviour")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print Graphviz DOT instead of a table")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include visibility and parent rules in DOT labels")

	return cmd
}

func (c *CLI) runDeps(ctx context.Context, path string, opts *depsOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, path)
	if err != nil {
		return err
	}
	applyDefaults(doc, cfg)

	popts := pipeline.Options{Direction: opts.direction, TargetSDK: opts.targetSDK}
	b, err := graph.Build(popts.Apply(doc))
	if err != nil {
		return err
	}

	if opts.dot {
		dot, err := nodelink.ToDOT(b, opts.axis, nodelink.Options{Detailed: opts.detailed})
		if err != nil {
			return err
		}
		fmt.Print(dot)
		return nil
	}

	edges, err := b.Edges(opts.axis)
	if err != nil {
		return err
	}
	dangling, err := b.Dangling(opts.axis)
	if err != nil {
		return err
	}

	printInfo("%s %s dependencies", StyleTitle.Render(doc.Name), opts.axis)
	if len(edges) == 0 && len(dangling) == 0 {
		printDetail("no sibling rules on this axis")
		return nil
	}
	fmt.Println(edgeTable(edges, dangling))
	return nil
}

// edgeTable renders dependency edges, dangling ones dimmed.
func edgeTable(edges, dangling []graph.Edge) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(edges)+len(dangling))
	for _, e := range edges {
		rows = append(rows, []string{e.From, e.Verb, e.To})
	}
	for _, e := range dangling {
		rows = append(rows, []string{e.From, e.Verb, e.To + " (missing)"})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Child", "Rule", "Depends on").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(edges) {
				return base.Foreground(colorYellow)
			}
			if col == 1 {
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorCyan)
		})
	return t.Render()
}
