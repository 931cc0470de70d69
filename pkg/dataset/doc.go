// Package dataset turns raw rows of text into a typed, immutable dataset
// snapshot: classification, parsed rows, per-axis ranges and labels.
//
// A Dataset is created once per load and never mutated. Store holds the
// current dataset and replaces it atomically on every new load, so a layout
// computation always works on a complete snapshot.
package dataset
