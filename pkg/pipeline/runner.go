package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/careatlas/pkg/cache"
	"github.com/matzehuels/careatlas/pkg/chart"
	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/errors"
	"github.com/matzehuels/careatlas/pkg/observability"
	"github.com/matzehuels/careatlas/pkg/vega"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds cached document entries. Zero means cache.TTLDocument.
	TTL time.Duration
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

// Result contains the outputs of a pipeline run.
type Result struct {
	// BuildID correlates this run's log lines and hook events.
	BuildID string

	// Document is the assembled document. Nil when Encoded came from the
	// cache, since the cached encoding is already canonical.
	Document *vega.Document

	// Encoded is the document's canonical JSON encoding.
	Encoded []byte

	// DatasetHash is the content hash of the snapshot file.
	DatasetHash string

	// Stats contains dataset summary statistics. Nil on a cache hit.
	Stats *dataset.Stats

	// Timings contains per-stage durations.
	Timings Timings

	// FromCache reports whether Encoded was served from the cache.
	FromCache bool
}

// Timings contains pipeline execution durations.
type Timings struct {
	Load    time.Duration
	Compile time.Duration
	Emit    time.Duration
}

// Execute runs the complete load → compile → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{BuildID: uuid.NewString()}
	logger := opts.Logger.With("build_id", result.BuildID)

	// The compiler is a pure function of (snapshot bytes, options), so the
	// snapshot content hash plus the option fingerprint is a sound key.
	raw, err := os.ReadFile(opts.Dataset)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s not found", opts.Dataset)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read dataset %s", opts.Dataset)
	}
	result.DatasetHash = cache.Hash(raw)
	cacheKey := r.Keyer.DocumentKey(result.DatasetHash, opts.DocumentKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "document")
			logger.Debug("document cache hit", "key", cacheKey)
			result.Encoded = data
			result.FromCache = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Timings.Load = time.Since(loadStart)
	result.Stats = dataset.Compute(ds)

	logger.Info("loaded snapshot",
		"rows", len(ds.Rows),
		"measures", result.Stats.Measures,
		"duration", result.Timings.Load)

	// Stage 2: Compile
	compileStart := time.Now()
	doc, err := r.Compile(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Timings.Compile = time.Since(compileStart)

	logger.Info("compiled document",
		"charts", len(doc.VConcat),
		"duration", result.Timings.Compile)

	// Stage 3: Emit
	emitStart := time.Now()
	encoded, err := r.Emit(ctx, doc)
	if err != nil {
		return nil, err
	}
	result.Encoded = encoded
	result.Timings.Emit = time.Since(emitStart)

	logger.Info("emitted document",
		"bytes", len(encoded),
		"duration", result.Timings.Emit)

	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLDocument
	}
	if err := r.Cache.Set(ctx, cacheKey, encoded, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "document", len(encoded))
	}

	return result, nil
}

// Load reads and schema-checks the snapshot named by opts.Dataset,
// dispatching on the file extension.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	format := dataset.Format(opts.Dataset)
	observability.Pipeline().OnLoadStart(ctx, format, opts.Dataset)

	start := time.Now()
	var ds *dataset.Dataset
	var err error
	if format == "sqlite" {
		ds, err = dataset.LoadSQLite(opts.Dataset, opts.Table)
	} else {
		ds, err = dataset.LoadCSV(opts.Dataset)
	}

	rows := 0
	if ds != nil {
		rows = len(ds.Rows)
	}
	observability.Pipeline().OnLoadComplete(ctx, format, opts.Dataset, rows, time.Since(start), err)
	return ds, err
}

// Compile validates the snapshot's row invariants and assembles the
// document. Validation failures abort before any chart exists.
func (r *Runner) Compile(ctx context.Context, ds *dataset.Dataset, opts Options) (*vega.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	rows := 0
	if ds != nil {
		rows = len(ds.Rows)
	}
	observability.Pipeline().OnCompileStart(ctx, rows)

	start := time.Now()
	doc, err := chart.Assemble(ds, opts.ChartOptions())
	observability.Pipeline().OnCompileComplete(ctx, time.Since(start), err)
	return doc, err
}

// Emit marshals the document to its canonical JSON encoding.
func (r *Runner) Emit(ctx context.Context, doc *vega.Document) ([]byte, error) {
	observability.Pipeline().OnEmitStart(ctx)

	start := time.Now()
	encoded, err := vega.Marshal(doc)
	size := len(encoded)
	observability.Pipeline().OnEmitComplete(ctx, size, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode document")
	}
	return encoded, nil
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
