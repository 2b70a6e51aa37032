// Package pipeline provides the core document pipeline for tidytree.
//
// This package implements the complete parse → measure → layout → render
// pipeline shared by the CLI and the API server. Centralizing the flow
// keeps behavior identical across entry points and gives every stage the
// same caching and instrumentation treatment.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Read a tree document (JSON, YAML, or DSL; local file, raw
//     content, or remote URL) into an arena tree
//  2. Measure: Fill missing node dimensions from sizing expressions
//  3. Layout: Compute tidy positions for every node
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "org.yaml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse and measure only
//	t, doc, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing tree
//	layout, err := runner.ComputeLayout(ctx, t, doc.Name, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sibaiper/tidy-tree/pkg/cache"
	"github.com/sibaiper/tidy-tree/pkg/tidy"
	"github.com/sibaiper/tidy-tree/pkg/tree"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPadding is the default drawing margin in pixels.
	DefaultPadding = 24.0

	// DefaultScale is the default PNG rasterization scale.
	DefaultScale = 2.0

	// DefaultSeed seeds the sketch style's deterministic jitter.
	DefaultSeed = uint64(42)
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Style constants for visual styles.
const (
	StyleSimple = "simple"
	StyleSketch = "sketch"
)

// Input format constants, shared with [treefile.DetectFormat].
const (
	InputJSON = "json"
	InputYAML = "yaml"
	InputDSL  = "dsl"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple: true,
	StyleSketch: true,
}

// ValidInputFormats is the set of recognized input document formats.
var ValidInputFormats = map[string]bool{
	InputJSON: true,
	InputYAML: true,
	InputDSL:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the document pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of Input or Source must be set: Input
	// names a local file or an http(s) URL, Source carries the document
	// content directly (the API path).
	Input   string `json:"input,omitempty"`
	Source  string `json:"source,omitempty"`
	Format  string `json:"format,omitempty"` // json, yaml, dsl; empty = auto-detect
	Name    string `json:"name,omitempty"`   // overrides the document name
	Refresh bool   `json:"refresh,omitempty"`

	// Measure options. Empty expressions use the built-in defaults.
	WidthExpr  string `json:"width_expr,omitempty"`
	HeightExpr string `json:"height_expr,omitempty"`

	// Layout options. Zero gaps mean "unset": the document's gaps apply,
	// then the engine defaults. Exact-zero spacing is only reachable
	// through the tidy package directly.
	VerticalGap    float64 `json:"vertical_gap,omitempty"`
	HorizontalGap  float64 `json:"horizontal_gap,omitempty"`
	SkipValidation bool    `json:"skip_validation,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Style        string   `json:"style,omitempty"`
	Padding      float64  `json:"padding,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	NoConnectors bool     `json:"no_connectors,omitempty"`
	NoLabels     bool     `json:"no_labels,omitempty"`
	Seed         uint64   `json:"seed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed and laid-out arena tree.
	Tree *tree.Tree

	// Doc is the input document after measuring.
	Doc treefile.Doc

	// TreeHash is the content hash of the measured document.
	TreeHash string

	// Layout is the computed layout document.
	Layout treefile.LayoutDoc

	// LayoutHash is the content hash of the layout document.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	Depth       int
	ParseTime   time.Duration
	MeasureTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
	LayoutOps   tidy.Stats
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the measured tree came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: simple, sketch)", style)
	}
	return nil
}

// ValidateInputFormat checks that an input format is valid.
func ValidateInputFormat(format string) error {
	if !ValidInputFormats[format] {
		return fmt.Errorf("invalid input format: %q (must be one of: json, yaml, dsl)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" && o.Source == "" {
		return fmt.Errorf("input or source is required")
	}
	if o.Input != "" && o.Source != "" {
		return fmt.Errorf("input and source are mutually exclusive")
	}
	if o.Source != "" && o.Format == "" {
		return fmt.Errorf("format is required with inline source")
	}
	if o.Format != "" {
		if err := ValidateInputFormat(o.Format); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VerticalGap == 0 {
		o.VerticalGap = tidy.DefaultVerticalGap
	}
	if o.HorizontalGap == 0 {
		o.HorizontalGap = tidy.DefaultHorizontalGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.VerticalGap < 0 || o.HorizontalGap < 0 {
		return fmt.Errorf("gaps must be non-negative")
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ApplyDocGaps adopts the document's spacing for gaps the caller left
// unset. Call before ValidateForLayout so document gaps win over the
// engine defaults.
func (o *Options) ApplyDocGaps(d treefile.Doc) {
	if d.Gaps == nil {
		return
	}
	if o.VerticalGap == 0 && d.Gaps.Vertical > 0 {
		o.VerticalGap = d.Gaps.Vertical
	}
	if o.HorizontalGap == 0 && d.Gaps.Horizontal > 0 {
		o.HorizontalGap = d.Gaps.Horizontal
	}
}

// TreeKeyOpts returns cache key options for the parse+measure stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		WidthExpr:  o.WidthExpr,
		HeightExpr: o.HeightExpr,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VerticalGap:   o.VerticalGap,
		HorizontalGap: o.HorizontalGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Scale:  o.Scale,
	}
}
