// Package io reads and writes feature records as JSON or YAML.
//
// # Format
//
// Both encodings carry the same fields:
//
//	{
//	  "name": "pUC19",
//	  "length": 2686,
//	  "topology": "circular",
//	  "features": [
//	    {"start": 146, "end": 469, "strand": "-", "label": "lacZα", "color": "#ffcc00"},
//	    {"start": 2600, "end": 100, "strand": "+", "label": "ori"}
//	  ]
//	}
//
// Strands are "+", "-" or "."; topology is "linear" or "circular". On
// circular records a feature with end < start crosses the origin.
// Optional record fields are first_index (cropped records keep absolute
// coordinates) and origin (the coordinate drawn at the top of circular
// maps). Optional feature fields are label, color, thickness, kind and
// attrs.
//
// # Validation
//
// Every reader returns a normalized record that satisfies the record
// invariants, so imported records can go straight to layout. A feature
// outside the record bounds fails the import with OUT_OF_RANGE_FEATURE.
//
// # Round Trips
//
// Writers emit normalized coordinates, so a wrapping feature written as
// {start: 2600, end: 100} reads back as {start: 2600, end: 2786}. Both
// forms describe the same interval.
package io
