package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relayout/pkg/cache"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Parse reads a layout document from a .toml or .json file.
func (r *Runner) Parse(ctx context.Context, path string) (*graph.Document, error) {
	hooks := observability.Layout()
	hooks.OnParseStart(ctx, path)
	start := time.Now()

	doc, err := graph.ReadDocumentFile(path)
	count := 0
	if doc != nil {
		count = len(doc.Children)
	}
	hooks.OnParseComplete(ctx, path, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("parsed document", "path", path, "children", count)
	return doc, nil
}

// Execute solves doc and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, doc *graph.Document, opts Options) (*Result, error) {
	result, err := r.Solve(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Solve builds and solves doc under opts. The document is always validated;
// only the layout passes are skipped on a cache hit.
func (r *Runner) Solve(ctx context.Context, doc *graph.Document, opts Options) (*Result, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, err
	}
	doc = opts.Apply(doc)

	b, err := graph.Build(doc)
	if err != nil {
		return nil, err
	}
	for _, w := range b.Warnings {
		r.Logger.Warn("dangling rule", "detail", w)
	}

	key, err := r.layoutKey(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: b.Warnings, Stats: Stats{ChildCount: len(doc.Children)}}
	start := time.Now()

	if !opts.Refresh {
		if res, hit := r.cachedLayout(ctx, key); hit {
			result.Layout = res
			result.CacheInfo.SolveHit = true
			result.Stats.SolveTime = time.Since(start)
			r.Logger.Debug("layout cache hit", "name", doc.Name, "key", key)
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeTimeout, err, "solve %s", doc.Name)
	}

	hooks := observability.Layout()
	hooks.OnSolveStart(ctx, doc.Name, len(doc.Children))
	res, err := b.Solve()
	result.Stats.SolveTime = time.Since(start)
	hooks.OnSolveComplete(ctx, doc.Name, result.Stats.SolveTime, err)
	if err != nil {
		return nil, err
	}
	res.Key = key
	result.Layout = res

	if data, err := graph.MarshalResult(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	r.Logger.Info("solved layout",
		"name", doc.Name,
		"children", len(doc.Children),
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"duration", result.Stats.SolveTime)
	return result, nil
}

// Get returns a previously solved layout by key.
func (r *Runner) Get(ctx context.Context, key string) (graph.Result, bool, error) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		return graph.Result{}, false, rerrors.Wrap(rerrors.ErrCodeStorage, err, "read layout")
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return graph.Result{}, false, nil
	}
	res, err := graph.ReadResult(bytes.NewReader(data))
	if err != nil {
		return graph.Result{}, false, rerrors.Wrap(rerrors.ErrCodeStorage, err, "decode layout")
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return res, true, nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (graph.Result, bool) {
	res, hit, err := r.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return graph.Result{}, false
	}
	return res, hit
}

func (r *Runner) layoutKey(doc *graph.Document) (string, error) {
	data, err := graph.CanonicalJSON(doc)
	if err != nil {
		return "", rerrors.Wrap(rerrors.ErrCodeInternal, err, "hash document")
	}
	return r.Keyer.LayoutKey(cache.Hash(data), LayoutKeyOpts(doc)), nil
}

// RenderWithCacheInfo renders a solved layout of doc with caching and
// reports whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *graph.Document, res graph.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalResult(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	if opts.Kind != KindFrames {
		docData, err := graph.CanonicalJSON(opts.Apply(doc))
		if err != nil {
			return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
		}
		layoutHash = cache.Hash(docData)
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
			break
		}
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var b *graph.Built
	if opts.Kind != KindFrames {
		if b, err = graph.Build(opts.Apply(doc)); err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
	}
	rendered, err := Render(b, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *graph.Document, res graph.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
