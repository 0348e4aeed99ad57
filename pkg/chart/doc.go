// Package chart reads chart datasets and serializes computed layouts.
//
// This package sits at the boundary between files (or HTTP bodies) and the
// pure layout engine in pkg/core/pie:
//
//   - [Dataset]: an optional title plus the ordered entries to chart
//   - [Layout]: the wire form of a computed [pie.Layout]
//
// # Datasets
//
// Three input formats are understood:
//
//	JSON     {"title": "Votes", "entries": [{"name": "yes", "value": 60}]}
//	TOML     title = "Votes" followed by [[entries]] tables
//	Mermaid  pie / title Votes / "yes" : 60
//
// A JSON document may also be a bare array of entries. Values may be numbers
// or numeric strings. [ReadDatasetFile] picks the format from the file
// extension.
//
// # Layouts
//
// [Export] converts an engine layout to the serialization format and [Parse]
// converts it back, so a layout computed once can be cached, sent over HTTP
// and rendered later without recomputing geometry:
//
//	l, _ := pie.Compute(ds.Entries, cfg)
//	chart.WriteLayoutFile(chart.Export(l, ds.Title), "votes.layout.json")
//
//	saved, _ := chart.ReadLayoutFile("votes.layout.json")
//	l, _ = chart.Parse(saved)
//
// [pie.Layout]: github.com/matzehuels/piechart/pkg/core/pie.Layout
package chart
