// Package dataprocessing turns a UV-Vis spectra workbook into a
// domain.Dataset and derives the kinetics time series from its column
// headers.
//
// # Input layout
//
// One sheet (the first one unless configured) with a header row. The
// wavelength column is located by name ("Wavelength" by default); every
// other non-blank header is a condition column, kept in sheet order:
//
//	Wavelength | Initial Solution | Dark | 30 min | 60 min | ...
//	200        | 0.912            | 0.701| 0.512  | 0.388  |
//
// Cells are read as raw values so number formats do not affect parsing.
// Fully blank rows are skipped; a blank or non-numeric cell inside a data
// row is a parsing error naming the sheet cell.
//
// # Time series
//
// Condition columns whose header contains the time marker ("min") carry an
// elapsed time. ParseTimeInterval takes the first whitespace-delimited token
// of the header and keeps its digits, so "30 min", "30min" and "30Y min"
// all read as 30. Each TimePoint keeps the condition name it came from, so
// kinetics pairs times with peaks by name rather than by position.
package dataprocessing
