package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sibaiper/tidy-tree/pkg/observability"
	"github.com/sibaiper/tidy-tree/pkg/tidy"
	"github.com/sibaiper/tidy-tree/pkg/tree"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// ComputeLayout runs the tidy layout engine over t and exports the result
// as a layout document. The tree's scratch fields are reset first, so a
// tree that has been laid out before produces identical output.
func ComputeLayout(ctx context.Context, t *tree.Tree, name string, opts Options) (treefile.LayoutDoc, tidy.Stats, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return treefile.LayoutDoc{}, tidy.Stats{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.Len())

	t.ResetScratch()

	var stats tidy.Stats
	layoutOpts := []tidy.Option{
		tidy.WithVerticalGap(opts.VerticalGap),
		tidy.WithHorizontalGap(opts.HorizontalGap),
		tidy.WithStats(&stats),
	}
	if opts.SkipValidation {
		layoutOpts = append(layoutOpts, tidy.WithoutValidation())
	}

	err := tidy.Layout(t, layoutOpts...)
	observability.Pipeline().OnLayoutComplete(ctx, t.Len(), time.Since(start), err)
	if err != nil {
		return treefile.LayoutDoc{}, stats, fmt.Errorf("layout: %w", err)
	}

	doc, err := treefile.NewLayoutDoc(t, name, opts.VerticalGap, opts.HorizontalGap)
	if err != nil {
		return treefile.LayoutDoc{}, stats, fmt.Errorf("export layout: %w", err)
	}
	return doc, stats, nil
}
