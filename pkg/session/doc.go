// Package session wires the interpretation pipeline end to end for one
// form-filling interaction: template load and parse, field flattening,
// answer initialization with optional resume and prefill, the single write
// path for edits, on-demand validation, and export/submission payload
// shaping.
//
// All session operations are synchronous; the only asynchronous boundaries
// (template fetch, submission save, profile lookup) sit with the caller's
// collaborators.
package session
