// Package feature defines the data model shared by every featuremap stage:
// annotated intervals ([Feature]), the sequence they live on ([Record]) and
// the builder used by translation code to assemble features ([Draft]).
//
// # Coordinates
//
// Coordinates are integers in sequence units. A record covers the closed
// domain [FirstIndex, FirstIndex+Length]; most records start at zero, while
// cropped records keep the absolute coordinates of their source so that
// rulers and labels still refer to the original sequence.
//
// On circular records a feature may cross the origin. Such a feature is
// written with End < Start (or End past the domain) and normalized by
// [NewRecord] so that Start lies inside the domain and End = Start + span,
// possibly beyond FirstIndex+Length.
//
// # Immutability
//
// Records and features are treated as values. [Record.Crop] and
// [Record.Clone] return independent copies; nothing in this package
// mutates a record after construction.
//
// # Point Features
//
// A feature with Start == End is a point feature (a restriction site, a
// SNP). It has zero width in sequence coordinates but still occupies a
// layout level; see package layout for how its visual width is chosen.
package feature
