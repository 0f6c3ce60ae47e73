// Package schema models the declarative form-template dialect and resolves
// its shape ambiguities once at parse time.
//
// A template is a loosely-typed JSON (or YAML) document: formStructure may be
// a bare field array or a list of titled sections; sections carry either an
// explicit fields array or free-form content; choice fields carry options or
// a categories object; matrix questions are objects or bare strings. Parse
// normalises all of that into tagged Go values so downstream components
// (flatten, answers, validation) never re-inspect raw JSON.
//
// Templates are untrusted input. Parsing is total: misshapen members degrade
// to empty derivations instead of failing, and every display string is
// stripped of markup.
package schema
