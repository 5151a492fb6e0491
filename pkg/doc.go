// Package pkg provides the core libraries for featuremap, a layout and
// drawing engine for annotated DNA sequences.
//
// # Overview
//
// Featuremap turns sequence annotations into feature maps: features that
// overlap are stacked on separate levels, labels are packed into rows above
// the features without colliding, and circular records (plasmids) are laid
// out as concentric rings. The pkg directory is organized into four areas:
//
//  1. Domain model and algorithms ([feature], [layout])
//  2. Input ([annotation], [translate], [io])
//  3. Output ([render], [render/sink], [render/styles], [render/overlap])
//  4. Orchestration and services ([pipeline], [cache], [store], [publish],
//     [server], [observability])
//
// # Architecture
//
// The typical data flow through featuremap:
//
//	GenBank / GFF3 / BED file
//	         ↓
//	    [annotation] package (parse into generic annotations)
//	         ↓
//	    [translate] package (themes and hooks → feature.Record)
//	         ↓
//	    [layout] package (levels, label rows, circular bands → layout.Plan)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/featuremap/pkg/feature"
//	    "github.com/matzehuels/featuremap/pkg/layout"
//	    "github.com/matzehuels/featuremap/pkg/render/sink"
//	)
//
//	rec, _ := feature.NewRecord(2686, feature.Circular, []feature.Feature{
//	    {Start: 146, End: 469, Strand: feature.Reverse, Label: "lacZα"},
//	    {Start: 1625, End: 2486, Strand: feature.Reverse, Label: "bla"},
//	})
//	plan, _ := layout.New(layout.WithWidth(800)).ComputeLayout(rec)
//	svg, _ := sink.Render(plan, sink.FormatSVG)
//
// # Main Packages
//
// [feature] - Features, strands, records and cropping. Records are linear or
// circular; circular features may cross the origin.
//
// [layout] - The level assigner, the label placer and the record layout
// engine. A [layout.Plan] is a complete, serializable description of where
// everything goes and is what renderers consume.
//
// [annotation] and [translate] - Parsers for common annotation formats and
// the themeable translation of parsed annotations into records.
//
// [render/sink] - Drawing a plan to SVG, native PNG, PDF and JSON, with
// ruler ticks, signal tracks and a choice of [render/styles].
//
// [pipeline] - The load → layout → render pipeline shared by the CLI and
// the HTTP server, with per-stage caching through [cache].
//
// [store] and [publish] - Named records in SQLite or Postgres, and artifact
// upload to S3.
//
// [server] - The HTTP API, instrumented through [observability].
package pkg
