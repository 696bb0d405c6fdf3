// Package pipeline provides the core compilation pipeline for Careatlas.
//
// This package implements the complete load → compile → emit pipeline shared
// by the CLI, the preview server, and the TUI. Centralizing it here keeps
// caching and instrumentation behavior identical across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the snapshot (CSV or SQLite) and check its schema
//  2. Compile: Validate row invariants and assemble the chart document
//  3. Emit: Marshal the document to its canonical JSON encoding
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Dataset: "snapshot.csv",
//	    DataURL: "snapshot.csv",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Encoded
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/careatlas/pkg/cache"
	"github.com/matzehuels/careatlas/pkg/chart"
	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and TUI
// =============================================================================

const (
	// DefaultTable is the table read from SQLite snapshots.
	DefaultTable = dataset.DefaultTable

	// DefaultOutput is the output path the CLI writes when none is given.
	DefaultOutput = "careatlas.vl.json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// validate is the shared struct validator. Options structs arrive from CLI
// flags, TOML config, and the preview server's query parameters, so the
// tag-driven checks run in one place.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Options contains all configuration for the compilation pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Dataset string `json:"dataset"          validate:"required"`
	Table   string `json:"table,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Compile options. Exactly one data reference mode is active: a URL the
	// rendering harness resolves, or the rows embedded inline.
	DataURL string `json:"data_url,omitempty" validate:"required_without=Inline"`
	Inline  bool   `json:"inline,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid pipeline options")
	}
	if o.Table == "" {
		o.Table = DefaultTable
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ChartOptions returns the compile options passed to the assembler.
func (o *Options) ChartOptions() chart.Options {
	return chart.Options{
		DataURL: o.DataURL,
		Inline:  o.Inline,
	}
}

// DocumentKeyOpts returns cache key options for the compiled document.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		DataURL: o.DataURL,
		Inline:  o.Inline,
	}
}
