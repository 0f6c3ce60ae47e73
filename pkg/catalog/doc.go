// Package catalog enumerates the closed set of supported field types and
// the per-type semantics the engine dispatches on: default answer values,
// format checks, structural lints, and composite answer-unit expansion.
//
// The registry replaces what would otherwise be a growing type-tag switch;
// supporting a new field type means registering a new Entry.
package catalog
