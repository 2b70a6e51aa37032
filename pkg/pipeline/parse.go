package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sibaiper/tidy-tree/pkg/cache"
	"github.com/sibaiper/tidy-tree/pkg/dsl"
	"github.com/sibaiper/tidy-tree/pkg/httputil"
	"github.com/sibaiper/tidy-tree/pkg/measure"
	"github.com/sibaiper/tidy-tree/pkg/observability"
	"github.com/sibaiper/tidy-tree/pkg/tree"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// Parse loads the input document, parses it into a tree, and applies the
// sizing expressions to nodes with missing dimensions. Remote inputs are
// fetched over HTTP with response caching through c.
func Parse(ctx context.Context, c cache.Cache, keyer cache.Keyer, opts Options) (*tree.Tree, treefile.Doc, error) {
	data, name, err := loadSource(ctx, c, keyer, opts)
	if err != nil {
		return nil, treefile.Doc{}, err
	}

	doc, err := parseDocument(data, name, opts)
	if err != nil {
		return nil, treefile.Doc{}, err
	}

	t, err := treefile.ToTree(doc)
	if err != nil {
		return nil, treefile.Doc{}, fmt.Errorf("build tree: %w", err)
	}

	if err := Measure(ctx, t, opts); err != nil {
		return nil, treefile.Doc{}, err
	}

	// Re-export so the cached document carries the measured dimensions.
	measured, err := treefile.FromTree(t, doc.Name)
	if err != nil {
		return nil, treefile.Doc{}, fmt.Errorf("export measured tree: %w", err)
	}
	measured.Gaps = doc.Gaps

	return t, measured, nil
}

// Measure fills zero-valued node dimensions using the sizing expressions.
func Measure(ctx context.Context, t *tree.Tree, opts Options) error {
	start := time.Now()
	observability.Pipeline().OnMeasureStart(ctx, t.Len())

	m, err := measure.New(opts.WidthExpr, opts.HeightExpr)
	if err != nil {
		observability.Pipeline().OnMeasureComplete(ctx, t.Len(), time.Since(start), err)
		return fmt.Errorf("compile sizing expressions: %w", err)
	}
	err = m.Apply(t)
	observability.Pipeline().OnMeasureComplete(ctx, t.Len(), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("measure: %w", err)
	}
	return nil
}

// parseDocument decodes the raw bytes into a tree document, using the
// explicit format when given and sniffing otherwise.
func parseDocument(data []byte, name string, opts Options) (treefile.Doc, error) {
	format := opts.Format
	if format == "" {
		format = treefile.DetectFormat(name, data)
	}

	var (
		doc treefile.Doc
		err error
	)
	switch format {
	case InputJSON:
		doc, err = treefile.Unmarshal(data)
	case InputYAML:
		doc, err = treefile.UnmarshalYAML(data)
	case InputDSL:
		var parsed *treefile.Doc
		parsed, err = dsl.ParseString(string(data), name)
		if err == nil {
			doc = *parsed
		}
	default:
		return treefile.Doc{}, fmt.Errorf("unrecognized input format: %q", format)
	}
	if err != nil {
		return treefile.Doc{}, fmt.Errorf("parse %s document: %w", format, err)
	}

	if opts.Name != "" {
		doc.Name = opts.Name
	}
	if doc.Name == "" {
		doc.Name = docNameFromPath(name)
	}
	return doc, nil
}

// loadSource resolves the option's input to raw bytes plus a display name.
// Remote fetches go through the cache under an HTTP key so repeated runs
// against the same URL stay offline within the TTL window.
func loadSource(ctx context.Context, c cache.Cache, keyer cache.Keyer, opts Options) ([]byte, string, error) {
	if opts.Source != "" {
		return []byte(opts.Source), opts.Name, nil
	}

	if isURL(opts.Input) {
		data, err := fetchRemote(ctx, c, keyer, opts)
		if err != nil {
			return nil, "", err
		}
		return data, opts.Input, nil
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, "", fmt.Errorf("read input %s: %w", opts.Input, err)
	}
	return data, opts.Input, nil
}

// fetchRemote downloads a document with retry and caches the response.
func fetchRemote(ctx context.Context, c cache.Cache, keyer cache.Keyer, opts Options) ([]byte, error) {
	key := keyer.HTTPKey("doc", opts.Input)

	if !opts.Refresh {
		if data, hit, err := c.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "http")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, "GET", opts.Input)
	data, err := httputil.FetchWithRetry(ctx, httputil.NewHTTPClient(), opts.Input)
	if err != nil {
		observability.HTTP().OnError(ctx, "GET", opts.Input, err)
		return nil, fmt.Errorf("fetch %s: %w", opts.Input, err)
	}
	observability.HTTP().OnResponse(ctx, "GET", opts.Input, len(data), time.Since(start))

	if err := c.Set(ctx, key, data, cache.HTTPTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(data))
	}
	return data, nil
}

// isURL reports whether the input names a remote document.
func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// docNameFromPath derives a document name from the input path or URL.
func docNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
