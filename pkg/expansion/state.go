// Package expansion tracks which sections, stages, and units of a form are
// expanded. It is derived UI bookkeeping: the state is owned by the caller,
// passed into pure functions, reset on every template load, and has no
// effect on answers or validation.
package expansion

import "github.com/goliatone/go-formfill/pkg/schema"

// State maps a section/stage/unit key to its expanded flag. Keys absent
// from the map are collapsed.
type State map[string]bool

// New returns an empty state.
func New() State {
	return make(State)
}

// Toggle flips the key's expanded flag.
func (s State) Toggle(key string) {
	if s == nil {
		return
	}
	s[key] = !s[key]
}

// Expand marks the key expanded.
func (s State) Expand(key string) {
	if s != nil {
		s[key] = true
	}
}

// Collapse marks the key collapsed.
func (s State) Collapse(key string) {
	if s != nil {
		s[key] = false
	}
}

// ExpandAll marks every supplied key expanded.
func (s State) ExpandAll(keys []string) {
	for _, key := range keys {
		s.Expand(key)
	}
}

// CollapseAll marks every supplied key collapsed.
func (s State) CollapseAll(keys []string) {
	for _, key := range keys {
		s.Collapse(key)
	}
}

// Expanded reports the flag for one key; absent keys are collapsed.
func (s State) Expanded(key string) bool {
	return s != nil && s[key]
}

// AllExpanded reports whether every supplied key is currently expanded.
// An empty key list is not considered fully expanded.
func (s State) AllExpanded(keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if !s.Expanded(key) {
			return false
		}
	}
	return true
}

// SectionKeys derives the expansion keys for a form's sections: explicit
// identifiers when present, positional indexes otherwise. Flat-mode forms
// have no sections and yield nil.
func SectionKeys(form *schema.Form) []string {
	if form == nil || form.Layout == schema.LayoutFlat {
		return nil
	}
	keys := make([]string, 0, len(form.Sections))
	for _, section := range form.Sections {
		keys = append(keys, section.KeyOrIndex())
	}
	return keys
}

// UnitKeys derives the expansion keys for unit-competency entries across
// all content sections, keyed by unit code.
func UnitKeys(form *schema.Form) []string {
	if form == nil {
		return nil
	}
	var keys []string
	for _, section := range form.Sections {
		for _, unit := range section.Content.Units {
			if unit.Code != "" {
				keys = append(keys, unit.Code)
			}
		}
	}
	return keys
}

// InitialSections returns the default section state for a freshly loaded
// template: every section key present and expanded.
func InitialSections(form *schema.Form) State {
	state := New()
	state.ExpandAll(SectionKeys(form))
	return state
}
