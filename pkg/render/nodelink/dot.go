package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relayout/pkg/core/relative"
	"github.com/matzehuels/relayout/pkg/core/rules"
	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds visibility and parent-relative rules to node labels.
	Detailed bool
}

// ToDOT converts the dependencies of b on axis to Graphviz DOT.
// Horizontal graphs flow left to right, vertical graphs top to bottom.
func ToDOT(b *graph.Built, axis string, opts Options) (string, error) {
	edges, err := b.Edges(axis)
	if err != nil {
		return "", err
	}
	dangling, err := b.Dangling(axis)
	if err != nil {
		return "", err
	}

	rankdir := "TB"
	if axis == graph.AxisHorizontal {
		rankdir = "RL"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", b.Name)
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12, fontcolor=\"#555555\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range b.ChildNames() {
		c := child(b, name)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(name, c, opts.Detailed))}
		if c != nil && c.Visibility == relative.Gone {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=\"#666666\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Verb)
	}
	for i, e := range dangling {
		to := "missing" + strconv.Itoa(i+1)
		fmt.Fprintf(&buf, "  %q [label=%q, style=dotted];\n", to, e.To+" (missing)")
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n", e.From, to, e.Verb)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func child(b *graph.Built, name string) *relative.Child {
	id, ok := b.ID(name)
	if !ok {
		return nil
	}
	c, _ := b.Layout.Child(id)
	return c
}

func fmtLabel(name string, c *relative.Child, detailed bool) string {
	if !detailed || c == nil {
		return name
	}

	parts := []string{"visibility: " + c.Visibility.String()}
	resolved := c.Resolved()
	var parent []string
	for v := rules.Verb(0); int(v) < rules.VerbCount; v++ {
		if v.IsParentRelative() && resolved.Has(v) {
			parent = append(parent, v.String())
		}
	}
	if len(parent) > 0 {
		parts = append(parts, "parent: "+strings.Join(parent, ", "))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-sized root tag Graphviz emits with a
// pixel-sized one starting at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
