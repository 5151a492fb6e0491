// Package annotation reads externally produced sequence annotations.
//
// The types here mirror the files they come from rather than the layout
// model: an annotation [Feature] has a free-form type and multi-valued
// qualifiers, and is turned into a [feature.Feature] by package translate.
//
// Supported inputs:
//   - GenBank flat files ([ReadGenBank]): LOCUS length and topology plus the
//     FEATURES table
//   - GFF3 ([ReadGFF])
//   - BED3 to BED6 ([ReadBED])
//   - bedGraph signal tracks ([ReadBedGraph]), drawn under the map
//
// All coordinates are converted to 0-based half-open intervals.
package annotation
