// Package answers owns the mutable answer state of a form session: per-type
// default initialization, non-destructive identity prefill, and the single
// write path for user edits.
package answers
