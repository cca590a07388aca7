// Package pipeline runs the parse → solve → render flow shared by the CLI
// and the API server.
//
// # Stages
//
//  1. Parse: read a layout document from TOML or JSON
//  2. Solve: build the container and run the two-pass layout
//  3. Render: draw the solved frames or the rule dependency graph
//
// Solve and Render results are cached by content key, so solving the same
// document with the same options twice is a cache hit.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := runner.Parse(ctx, "card.toml")
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/relayout/pkg/cache"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
	"github.com/matzehuels/relayout/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTextCols and DefaultTextRows size the text rendering grid.
	DefaultTextCols = 80
	DefaultTextRows = 24

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Render kinds: the solved frames or the dependency graph of one axis.
const (
	KindFrames     = "frames"
	KindHorizontal = graph.AxisHorizontal
	KindVertical   = graph.AxisVertical
)

// ValidFormats lists the formats each render kind supports.
var ValidFormats = map[string]map[string]bool{
	KindFrames:     {FormatSVG: true, FormatPNG: true, FormatText: true, FormatJSON: true},
	KindHorizontal: {FormatDOT: true, FormatSVG: true, FormatPNG: true},
	KindVertical:   {FormatDOT: true, FormatSVG: true, FormatPNG: true},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Zero values keep what the document
// says. This struct supports JSON serialization for API requests.
type Options struct {
	// Solve overrides
	Direction string       `json:"direction,omitempty"`
	TargetSDK int          `json:"target_sdk,omitempty"`
	Width     *graph.Bound `json:"width,omitempty"`
	Height    *graph.Bound `json:"height,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`

	// Render options
	Kind     string   `json:"kind,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Cols     int      `json:"cols,omitempty"`
	Rows     int      `json:"rows,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the solved layout; Layout.Key is its cache key.
	Layout graph.Result

	// Warnings lists rules that resolved to no target.
	Warnings []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ChildCount int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateKind checks that a render kind is known.
func ValidateKind(kind string) error {
	if _, ok := ValidFormats[kind]; !ok {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: frames, horizontal, vertical)", kind)
	}
	return nil
}

// ValidateFormats checks that every format is supported by kind.
func ValidateFormats(kind string, formats []string) error {
	if err := ValidateKind(kind); err != nil {
		return err
	}
	for _, f := range formats {
		if !ValidFormats[kind][f] {
			return rerrors.New(rerrors.ErrCodeInvalidFormat, "format %q is not available for %s", f, kind)
		}
	}
	return nil
}

// ValidateForSolve checks the solve overrides.
func (o *Options) ValidateForSolve() error {
	if o.TargetSDK < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "target_sdk must not be negative")
	}
	for _, b := range []*graph.Bound{o.Width, o.Height} {
		if b == nil {
			continue
		}
		if _, err := b.Spec(); err != nil {
			return rerrors.Wrap(rerrors.ErrCodeInvalidInput, err, "bound")
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Kind == "" {
		o.Kind = KindFrames
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Cols == 0 {
		o.Cols = DefaultTextCols
	}
	if o.Rows == 0 {
		o.Rows = DefaultTextRows
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Kind, o.Formats)
}

// Apply returns a copy of doc with the solve overrides applied.
func (o *Options) Apply(doc *graph.Document) *graph.Document {
	out := *doc
	if o.Direction != "" {
		out.Direction = o.Direction
	}
	if o.TargetSDK != 0 {
		out.TargetSDK = o.TargetSDK
	}
	if o.Width != nil {
		out.Width = *o.Width
	}
	if o.Height != nil {
		out.Height = *o.Height
	}
	return &out
}

// LayoutKeyOpts returns cache key options for solving doc.
func LayoutKeyOpts(doc *graph.Document) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:  doc.Direction,
		TargetSDK:  doc.TargetSDK,
		WidthMode:  doc.Width.Mode,
		Width:      doc.Width.Size,
		HeightMode: doc.Height.Mode,
		Height:     doc.Height.Size,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Kind: o.Kind, Detailed: o.Detailed}
	switch format {
	case FormatText:
		k.Cols, k.Rows = o.Cols, o.Rows
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}
