package answers

import (
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// Store is the mutable answer state for one form session, keyed by
// canonical field name (or composite answer-unit key). Values are scalar
// strings, booleans, or deduplicated string sets according to the owning
// field's type.
type Store map[string]any

// Options configures store initialization.
type Options struct {
	// Prior seeds the store from a saved submission instead of per-type
	// defaults.
	Prior map[string]any
	// Profile enables the identity prefill pass.
	Profile *Profile
	// Registry resolves per-type default rules; catalog.Default when nil.
	Registry *catalog.Registry
}

// Initialize builds the answer store for the supplied canonical field
// sequence. With prior answers it starts from a shallow copy of them,
// otherwise from each field's type default. When a profile is supplied,
// recognized identity fields are prefilled, but only into empty values.
func Initialize(fields []schema.Field, opts Options) Store {
	reg := opts.Registry
	if reg == nil {
		reg = catalog.Default()
	}

	store := make(Store)
	if opts.Prior != nil {
		for key, value := range opts.Prior {
			store[key] = normalizeValue(value)
		}
	} else {
		for _, field := range fields {
			entry, _ := reg.Resolve(field.Type)
			switch {
			case entry.Informational():
				continue
			case entry.Composite():
				if entry.Expand == nil {
					continue
				}
				for _, unit := range entry.Expand(field) {
					if unit.Key != "" {
						store[unit.Key] = unit.Default
					}
				}
			default:
				if field.Name == "" || entry.DefaultValue == nil {
					continue
				}
				store[field.Name] = entry.DefaultValue(field)
			}
		}
	}

	if opts.Profile != nil {
		prefill(store, fields, *opts.Profile)
	}
	return store
}

// Set replaces a scalar answer. Unknown field names are tolerated; the
// validator only ever reports on canonical fields.
func (s Store) Set(name string, value any) {
	if s == nil || name == "" {
		return
	}
	s[name] = normalizeValue(value)
}

// SetBool replaces a boolean answer (bare checkbox or matrix cell).
func (s Store) SetBool(name string, value bool) {
	if s == nil || name == "" {
		return
	}
	s[name] = value
}

// ToggleMember adds the member to a set-valued answer when absent and
// removes it when present. Toggling twice restores the original set.
func (s Store) ToggleMember(name, member string) {
	if s == nil || name == "" {
		return
	}
	current := s.Members(name)
	for idx, existing := range current {
		if existing == member {
			s[name] = append(append([]string(nil), current[:idx]...), current[idx+1:]...)
			return
		}
	}
	s[name] = append(append([]string(nil), current...), member)
}

// String returns the scalar string answer for the field, or "".
func (s Store) String(name string) string {
	if value, ok := s[name].(string); ok {
		return value
	}
	return ""
}

// Bool returns the boolean answer for the field, or false.
func (s Store) Bool(name string) bool {
	if value, ok := s[name].(bool); ok {
		return value
	}
	return false
}

// Members returns the set-valued answer for the field, or nil.
func (s Store) Members(name string) []string {
	switch value := s[name].(type) {
	case []string:
		return value
	default:
		return nil
	}
}

// Clone returns a shallow copy of the store; set values are copied so the
// clone cannot alias the original's members.
func (s Store) Clone() Store {
	if s == nil {
		return nil
	}
	out := make(Store, len(s))
	for key, value := range s {
		if members, ok := value.([]string); ok {
			out[key] = append([]string(nil), members...)
			continue
		}
		out[key] = value
	}
	return out
}

// IsEmptyValue reports whether an answer counts as empty for prefill and
// required-field purposes: nil, the empty string, or a zero-member set.
// A false boolean is an explicit answer, not an empty one, for prefill;
// required bare checkboxes are checked separately by the validator.
func IsEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// normalizeValue maps JSON-decoded answer shapes onto the store's canonical
// value types, so prior submissions round-trip into deduplicated []string
// sets. Set answers are true sets; a duplicate member arriving from outside
// would otherwise survive one ToggleMember removal.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case []any:
		members := make([]string, 0, len(v))
		for _, member := range v {
			if text, ok := member.(string); ok {
				members = appendMember(members, text)
			}
		}
		return members
	case []string:
		members := make([]string, 0, len(v))
		for _, member := range v {
			members = appendMember(members, member)
		}
		return members
	default:
		return value
	}
}

func appendMember(members []string, member string) []string {
	for _, existing := range members {
		if existing == member {
			return members
		}
	}
	return append(members, member)
}
