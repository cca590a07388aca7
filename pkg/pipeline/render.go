package pipeline

import (
	"fmt"

	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/render/frames"
	"github.com/matzehuels/relayout/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. Frame kinds
// draw res; axis kinds draw the dependency graph of b.
func Render(b *graph.Built, res graph.Result, opts Options) (map[string][]byte, error) {
	if opts.Kind == KindFrames {
		return renderFrames(res, opts)
	}
	return renderDependencies(b, opts)
}

func renderFrames(res graph.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = frames.SVG(res, frames.WithBaseline())
		case FormatPNG:
			data, err = frames.PNG(res, opts.Scale, frames.WithBaseline())
		case FormatText:
			data = []byte(frames.Text(res, opts.Cols, opts.Rows) + "\n")
		case FormatJSON:
			data, err = graph.MarshalResult(res)
		default:
			return nil, fmt.Errorf("unsupported frames format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderDependencies(b *graph.Built, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.ToDOT(b, opts.Kind, nodelink.Options{Detailed: opts.Detailed})
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		default:
			return nil, fmt.Errorf("unsupported %s format: %s", opts.Kind, format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
