package chart

import (
	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/errors"
	"github.com/matzehuels/careatlas/pkg/vega"
)

// DocumentTitle is the fixed title attached to every compiled document.
const DocumentTitle = "Care services measures atlas"

// Level1Height is the concrete pixel height reserved for the level-1 chart
// so the document's top stays stable regardless of snapshot size.
const Level1Height = 300

// Options configures document assembly.
type Options struct {
	// DataURL is the dataset reference embedded in the document. The
	// rendering harness resolves it relative to the page.
	DataURL string

	// Inline embeds the snapshot rows into the document instead of
	// referencing DataURL. Useful for self-contained previews.
	Inline bool
}

// Assemble is the root assembler: it verifies the snapshot against the
// schema contract and value invariants, builds the three level charts, and
// stacks them vertically under the document-wide resolution policy. Any
// failure aborts before a document exists; no partial document is ever
// returned.
//
// Assembly is deterministic: identical snapshot and options yield a
// document that marshals byte-identically.
func Assemble(ds *dataset.Dataset, opts Options) (*vega.Document, error) {
	if ds == nil || len(ds.Rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no rows")
	}
	if err := ds.CheckSchema(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if !opts.Inline && opts.DataURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "either a data URL or inline mode is required")
	}

	sel := NewSelections()

	charts := make([]vega.Chart, 0, 3)
	for level := 1; level <= 3; level++ {
		height := float64(HeightAuto)
		if level == 1 {
			height = Level1Height
		}
		chart, err := BuildLevelChart(level, height, sel)
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}

	data := &vega.Data{URL: opts.DataURL}
	if opts.Inline {
		data = &vega.Data{Values: ds.Rows}
	}

	return &vega.Document{
		Schema:  vega.SchemaURL,
		Title:   &vega.Title{Text: DocumentTitle, Anchor: "start"},
		Data:    data,
		Params:  []vega.Param{sel.SortOrderParam()},
		VConcat: charts,
		Resolve: documentResolve(),
	}, nil
}
