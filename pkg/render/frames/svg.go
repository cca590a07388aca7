package frames

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/render"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

var fills = []string{"#e8f1fb", "#fdf1e2", "#e9f6ec", "#f6e9f4"}

// Option configures SVG rendering.
type Option func(*svgRenderer)

type svgRenderer struct {
	labels   bool
	baseline bool
}

// WithoutLabels omits child IDs.
func WithoutLabels() Option { return func(r *svgRenderer) { r.labels = false } }

// WithBaseline draws the container baseline when it has one.
func WithBaseline() Option { return func(r *svgRenderer) { r.baseline = true } }

// SVG renders res as an SVG document the size of the container.
func SVG(res graph.Result, opts ...Option) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := max(res.Width, 1), max(res.Height, 1)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%d" height="%d" fill="white" stroke="#333333" stroke-width="1"/>`+"\n", w, h)

	boxes := flatten(res.Frames, "", 0, 0, 0, nil)
	for _, b := range boxes {
		renderBox(&buf, b)
	}
	if r.labels {
		for _, b := range boxes {
			renderLabel(&buf, b)
		}
	}
	if r.baseline && res.Baseline >= 0 {
		fmt.Fprintf(&buf, `  <line class="baseline" x1="0" y1="%d" x2="%d" y2="%d" stroke="#d33" stroke-dasharray="4 2"/>`+"\n",
			res.Baseline, w, res.Baseline)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// PNG renders res via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func PNG(res graph.Result, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(SVG(res, opts...), scale)
}

func renderBox(buf *bytes.Buffer, b box) {
	fill := fills[b.depth%len(fills)]
	extra := ""
	if b.invisible {
		fill = "none"
		extra = ` stroke-dasharray="3 3"`
	}
	fmt.Fprintf(buf, `  <rect class="frame" id="frame-%s" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#4a6fa5" stroke-width="1"%s/>`+"\n",
		escapeXML(b.path), b.x, b.y, b.w, b.h, fill, extra)
}

func renderLabel(buf *bytes.Buffer, b box) {
	if b.w <= 0 || b.h <= 0 {
		return
	}
	size := fontSizeFor(float64(b.w), float64(b.h), len(b.label))
	fmt.Fprintf(buf, `  <text class="frame-label" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		float64(b.x)+float64(b.w)/2, float64(b.y)+float64(b.h)/2, size, escapeXML(b.label))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
