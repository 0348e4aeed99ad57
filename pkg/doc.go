// Package pkg provides the core libraries for piechart.
//
// # Overview
//
// piechart turns an ordered list of named, non-negative values into a pie or
// donut chart: slice angles, arc paths, palette colours, label placement and
// leader lines for slices too small to hold their own label. The pkg
// directory is organized into these areas:
//
//  1. [core/pie] - Domain logic (angles, arcs, colours, labels, leader lines)
//  2. [core/pie/sink] - Renderers (SVG, PNG, PDF)
//  3. [chart] - Dataset readers (JSON, TOML, Mermaid) and the layout format
//  4. [cache] - Layout and artifact caching (file, Redis, MongoDB)
//  5. [pipeline] - Orchestration (dataset → layout → render)
//  6. [server] - HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML / Mermaid dataset
//	         ↓
//	    [chart] package (read + validate)
//	         ↓
//	    [core/pie] package (layout)
//	         ↓
//	    [chart] package (portable layout.json)
//	         ↓
//	    [core/pie/sink] package (SVG/PNG/PDF)
//
// # Quick Start
//
// Lay out and render a dataset without caching:
//
//	import (
//	    "github.com/matzehuels/piechart/pkg/chart"
//	    "github.com/matzehuels/piechart/pkg/core/pie"
//	    "github.com/matzehuels/piechart/pkg/core/pie/sink"
//	)
//
//	ds, _ := chart.ReadDatasetFile("browsers.json")
//	layout, _ := pie.Compute(ds.Entries, pie.DefaultConfig())
//	svg := sink.RenderSVG(layout, sink.WithTitle(ds.Title))
//
// With caching and every output format, use [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, ds, pipeline.Options{
//	    LeaderLines: true,
//	    Formats:     []string{"svg", "png"},
//	})
//
// # Errors
//
// Every package reports failures as [errors.Error] values carrying a stable
// code (INVALID_ENTRY, INVALID_CONFIG, INVALID_FORMAT, ...). The HTTP server
// maps codes to status codes and the CLI maps them to exit codes.
package pkg
