package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/cache"
	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/pipeline"
	"github.com/matzehuels/relayout/pkg/render/frames"
)

// legacyTargetSDK enables every legacy behaviour when toggled in preview.
const legacyTargetSDK = 16

// widthStep is how far +/- move the container width in preview.
const widthStep = 10

// previewGravities are cycled with "g"; the empty entry keeps the document's.
var previewGravities = []string{"", "start|top", "center", "end|bottom", "center_horizontal", "center_vertical"}

var (
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewGridStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var cols, rows int

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Interactively re-solve a layout while toggling direction and legacy mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, loggerFromContext(ctx))
			defer runner.Close()

			doc, err := runner.Parse(ctx, args[0])
			if err != nil {
				return err
			}
			applyDefaults(doc, cfg)

			m := NewPreviewModel(ctx, runner, doc, cols, rows)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&cols, "cols", pipeline.DefaultTextCols, "grid columns")
	cmd.Flags().IntVar(&rows, "rows", pipeline.DefaultTextRows, "grid rows")

	return cmd
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// PreviewModel is the bubbletea model for the preview command. Every key
// that changes an option re-solves the document.
type PreviewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	doc    *graph.Document

	Options pipeline.Options
	Gravity int
	Cols    int
	Rows    int

	Result *pipeline.Result
	Err    error
}

// NewPreviewModel creates a preview model and solves the document once.
func NewPreviewModel(ctx context.Context, runner *pipeline.Runner, doc *graph.Document, cols, rows int) PreviewModel {
	m := PreviewModel{ctx: ctx, runner: runner, doc: doc, Cols: cols, Rows: rows}
	return m.solve()
}

func (m PreviewModel) solve() PreviewModel {
	doc := *m.doc
	if g := previewGravities[m.Gravity]; g != "" {
		doc.Gravity = g
	}
	m.Result, m.Err = m.runner.Solve(m.ctx, &doc, m.Options)
	return m
}

// Direction returns the direction currently solved with.
func (m PreviewModel) Direction() string {
	switch {
	case m.Options.Direction != "":
		return m.Options.Direction
	case m.doc.Direction != "":
		return m.doc.Direction
	}
	return "ltr"
}

// Legacy reports whether the legacy target SDK is selected.
func (m PreviewModel) Legacy() bool { return m.Options.TargetSDK == legacyTargetSDK }

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Cols = max(msg.Width-2, 10)
		m.Rows = max(msg.Height-8, 4)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.Direction() == "rtl" {
				m.Options.Direction = "ltr"
			} else {
				m.Options.Direction = "rtl"
			}
			return m.solve(), nil
		case "l":
			if m.Legacy() {
				m.Options.TargetSDK = 0
			} else {
				m.Options.TargetSDK = legacyTargetSDK
			}
			return m.solve(), nil
		case "g":
			m.Gravity = (m.Gravity + 1) % len(previewGravities)
			return m.solve(), nil
		case "+", "=":
			m.Options.Width = m.resized(widthStep)
			return m.solve(), nil
		case "-", "_":
			m.Options.Width = m.resized(-widthStep)
			return m.solve(), nil
		}
	}
	return m, nil
}

// resized returns a width bound delta pixels wider than the last solve.
// An unspecified document width becomes an at-most bound.
func (m PreviewModel) resized(delta int) *graph.Bound {
	cur := m.doc.Width
	if m.Options.Width != nil {
		cur = *m.Options.Width
	}
	if cur.Mode == "" || cur.Mode == "unspecified" {
		cur.Mode = "at_most"
		if m.Result != nil {
			cur.Size = m.Result.Layout.Width
		}
	}
	cur.Size = max(cur.Size+delta, 0)
	return &cur
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + m.doc.Name))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("r: direction  l: legacy  g: gravity  +/-: width  q: quit"))
	b.WriteString("\n\n")

	gravity := previewGravities[m.Gravity]
	if gravity == "" {
		gravity = "document"
	}
	legacy := "off"
	if m.Legacy() {
		legacy = "on"
	}
	status := fmt.Sprintf("direction %s · legacy %s · gravity %s", m.Direction(), legacy, gravity)

	if m.Err != nil {
		b.WriteString(previewStatusStyle.Render(status))
		b.WriteString("\n\n")
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
		b.WriteString("\n")
		return b.String()
	}

	res := m.Result.Layout
	status += fmt.Sprintf(" · %s", sizeString(res.Width, res.Height))
	b.WriteString(previewStatusStyle.Render(status))
	b.WriteString("\n\n")
	b.WriteString(previewGridStyle.Render(frames.Text(res, m.Cols, m.Rows)))
	for _, w := range m.Result.Warnings {
		b.WriteString("\n")
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(w))
	}
	b.WriteString("\n")
	return b.String()
}
