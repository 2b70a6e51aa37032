// Package cache provides caching for pipeline stage results.
//
// Each stage is keyed by the full set of inputs that influence its
// output: parsed trees by document content and sizing expressions,
// layouts by the tree hash and spacing, rendered artifacts by the layout
// hash and render options. Backends share the [Cache] interface:
// [FileCache] for the CLI, [RedisCache] for the API server, [NullCache]
// to disable caching.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTL values for each cached stage.
const (
	// HTTPTTL bounds how long fetched remote documents are reused.
	HTTPTTL = 15 * time.Minute

	// TreeTTL is the TTL for parsed and measured trees.
	TreeTTL = time.Hour

	// LayoutTTL is the TTL for computed layouts. A layout is fully
	// determined by the tree hash and spacing, so entries live long.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is the TTL for rendered artifacts.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is the interface all caching backends implement.
type Cache interface {
	// Get retrieves a value. A missing or expired key returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// TreeKey generates a key for parsed and measured trees.
	TreeKey(source string, opts TreeKeyOpts) string

	// LayoutKey generates a key for computed layouts.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// TreeKeyOpts are the inputs besides the document itself that change a
// measured tree.
type TreeKeyOpts struct {
	WidthExpr  string `json:"width_expr"`
	HeightExpr string `json:"height_expr"`
}

// LayoutKeyOpts are the inputs besides the tree that change a layout.
type LayoutKeyOpts struct {
	VerticalGap   float64 `json:"vertical_gap"`
	HorizontalGap float64 `json:"horizontal_gap"`
}

// ArtifactKeyOpts are the inputs besides the layout that change a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale"`
}

// DefaultKeyer derives stage keys by hashing the inputs with SHA-256.
// HTTP keys stay readable so operators can inspect them.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// TreeKey generates a key for parsed and measured trees.
func (k *DefaultKeyer) TreeKey(source string, opts TreeKeyOpts) string {
	return hashKey("tree", source, opts)
}

// LayoutKey generates a key for computed layouts.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
