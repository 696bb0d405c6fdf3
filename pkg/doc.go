// Package pkg provides the core libraries for Careatlas snapshot compilation.
//
// # Overview
//
// Careatlas compiles a joined care-taxonomy snapshot - one flat table mapping
// measures onto a three-level service taxonomy - into a single interactive
// chart document with cross-level brushing, legend filtering, and a
// switchable sort order.
//
// # Architecture
//
// The typical data flow through Careatlas:
//
//	CSV / SQLite snapshot
//	         ↓
//	    [dataset] package (decode + schema contract + validation)
//	         ↓
//	    [chart] package (selections, transforms, layers, assembly)
//	         ↓
//	    [vega] package (document structs + canonical JSON encoding)
//	         ↓
//	    chart document (JSON)
//
// # Quick Start
//
// Load a snapshot and compile it:
//
//	import (
//	    "github.com/matzehuels/careatlas/pkg/chart"
//	    "github.com/matzehuels/careatlas/pkg/dataset"
//	    "github.com/matzehuels/careatlas/pkg/vega"
//	)
//
//	ds, _ := dataset.Load("snapshot.csv")
//	doc, _ := chart.Assemble(ds, chart.Options{DataURL: "snapshot.csv"})
//	encoded, _ := vega.Marshal(doc)
//
// # Main Packages
//
// [dataset] - The snapshot schema contract: CSV and SQLite loaders, required
// columns, phase domain, value-level validation, and summary statistics.
//
// [chart] - The compiler core. Builds per-level layered charts (coverage
// rectangles, measure-extent lines, phase points) and stacks them into the
// final document. Pure function of (snapshot, options).
//
// [vega] - Minimal typed subset of the chart grammar the compiler emits,
// with deterministic marshalling.
//
// [tree] - Node-link rendering of the taxonomy hierarchy for auditing
// snapshot structure, via in-process Graphviz.
//
// [pipeline] - Complete load → compile → emit pipeline used by CLI, preview
// server, and TUI. Ensures consistent caching and instrumentation across all
// entry points.
//
// [cache] - Compiled-document caching keyed by snapshot content hash. File,
// Redis, memory, and null backends.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook interfaces for metrics without hard backend
// dependencies.
//
// [buildinfo] - Version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/chart/...    # Specific package
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/dataset
// [chart]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/chart
// [vega]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/vega
// [tree]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/careatlas/pkg/buildinfo
package pkg
