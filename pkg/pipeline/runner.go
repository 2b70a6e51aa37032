package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sibaiper/tidy-tree/pkg/cache"
	"github.com/sibaiper/tidy-tree/pkg/observability"
	"github.com/sibaiper/tidy-tree/pkg/tidy"
	"github.com/sibaiper/tidy-tree/pkg/tree"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options (each call lays out its own tree).
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete parse → measure → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1+2: Parse and measure
	parseStart := time.Now()
	t, doc, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tree = t
	result.Doc = doc
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = t.Len()
	result.Stats.Depth = t.Depth()
	result.CacheInfo.ParseHit = parseHit

	if docData, err := treefile.Marshal(doc); err == nil {
		result.TreeHash = cache.Hash(docData)
	}

	r.Logger.Info("parsed document",
		"name", doc.Name,
		"nodes", t.Len(),
		"depth", t.Depth(),
		"duration", result.Stats.ParseTime)

	// The document's spacing applies where flags left gaps unset.
	opts.ApplyDocGaps(doc)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	layout, layoutStats, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, t, doc.Name, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LayoutOps = layoutStats
	result.CacheInfo.LayoutHit = layoutHit

	// A cached layout skipped the engine, so the measured tree carries no
	// coordinates; rebuild the positioned tree from the layout document.
	if layoutHit {
		if positioned, err := layout.ToTree(); err == nil {
			result.Tree = positioned
		}
	}

	if layoutData, err := treefile.MarshalLayout(layout); err == nil {
		result.LayoutHash = cache.Hash(layoutData)
	}

	r.Logger.Info("computed layout",
		"nodes", len(layout.Nodes),
		"width", layout.Width,
		"height", layout.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses and measures with caching and returns cache
// hit info. Cache entries are keyed by the input reference (path, URL, or
// inline content hash) plus the sizing expressions; the TTL bounds
// staleness for path-keyed entries whose file changed underneath.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*tree.Tree, treefile.Doc, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, treefile.Doc{}, false, err
	}
	r.applyLogger(&opts)

	source := opts.Input
	if opts.Source != "" {
		source = cache.Hash([]byte(opts.Source))
	}
	cacheKey := r.Keyer.TreeKey(source, opts.TreeKeyOpts())

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, source, opts.Format)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := treefile.Unmarshal(data); err == nil {
				if t, err := treefile.ToTree(doc); err == nil {
					observability.Cache().OnCacheHit(ctx, "tree")
					observability.Pipeline().OnParseComplete(ctx, source, opts.Format, t.Len(), time.Since(start), nil)
					return t, doc, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	t, doc, err := Parse(ctx, r.Cache, r.Keyer, opts)
	observability.Pipeline().OnParseComplete(ctx, source, opts.Format, nodeCountOf(t), time.Since(start), err)
	if err != nil {
		return nil, treefile.Doc{}, false, err
	}

	if !opts.Refresh {
		if data, err := treefile.Marshal(doc); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TreeTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}

	return t, doc, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*tree.Tree, treefile.Doc, error) {
	t, doc, _, err := r.ParseWithCacheInfo(ctx, opts)
	return t, doc, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Layouts are keyed by the measured document's content
// hash plus the spacing options.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, t *tree.Tree, name string, opts Options) (treefile.LayoutDoc, tidy.Stats, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return treefile.LayoutDoc{}, tidy.Stats{}, false, err
	}
	r.applyLogger(&opts)

	treeHash := ""
	if doc, err := treefile.FromTree(t, name); err == nil {
		if data, err := treefile.Marshal(doc); err == nil {
			treeHash = cache.Hash(data)
		}
	}
	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	if treeHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := treefile.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, tidy.Stats{}, true, nil
			}
			// Deserialization failed, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout, stats, err := ComputeLayout(ctx, t, name, opts)
	if err != nil {
		return treefile.LayoutDoc{}, stats, false, err
	}

	if treeHash != "" {
		if data, err := treefile.MarshalLayout(layout); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return layout, stats, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, t *tree.Tree, name string, opts Options) (treefile.LayoutDoc, error) {
	layout, _, _, err := r.ComputeLayoutWithCacheInfo(ctx, t, name, opts)
	return layout, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l treefile.LayoutDoc, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := treefile.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l treefile.LayoutDoc, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func nodeCountOf(t *tree.Tree) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
