package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formfill/pkg/schema"
)

// Registry maps field-type tags to their semantic bundles. Lookups resolve
// aliases first, then fall back to an unsupported-type entry so unknown tags
// never fail; they render as display-only markers and skip answer checks.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	aliases map[string]string
}

// NewRegistry constructs a registry with every built-in field type
// registered.
func NewRegistry() *Registry {
	reg := &Registry{
		entries: make(map[string]Entry),
		aliases: make(map[string]string),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a type entry. Aliases resolve to the entry's
// canonical tag.
func (r *Registry) Register(entry Entry, aliases ...string) {
	if r == nil || strings.TrimSpace(entry.Type) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Type] = entry
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias != "" && alias != entry.Type {
			r.aliases[alias] = entry.Type
		}
	}
}

// Canonical resolves a raw fieldType tag to its canonical form. Unknown tags
// are returned as-is so fieldCounts still tally them under the authored
// name.
func (r *Registry) Canonical(fieldType string) string {
	if r == nil {
		return fieldType
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if canonical, ok := r.aliases[fieldType]; ok {
		return canonical
	}
	return fieldType
}

// Resolve returns the entry for the supplied tag, following aliases. The
// second result reports whether the tag was recognized; unrecognized tags
// resolve to the unsupported entry.
func (r *Registry) Resolve(fieldType string) (Entry, bool) {
	if r == nil {
		return unsupportedEntry(fieldType), false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag := fieldType
	if canonical, ok := r.aliases[tag]; ok {
		tag = canonical
	}
	if entry, ok := r.entries[tag]; ok {
		return entry, true
	}
	return unsupportedEntry(fieldType), false
}

func unsupportedEntry(fieldType string) Entry {
	return Entry{
		Type:         fieldType,
		Value:        ValueString,
		Unsupported:  true,
		DefaultValue: emptyStringDefault,
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(field schema.Field, value any) []string {
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	if !emailPattern.MatchString(text) {
		return []string{fmt.Sprintf("Field %q must be a valid email", fieldRef(field))}
	}
	return nil
}

func validateNumber(field schema.Field, value any) []string {
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
		return []string{fmt.Sprintf("Field %q must be a number", fieldRef(field))}
	}
	return nil
}

func lintMultiCheckbox(field schema.Field) []string {
	if field.Options == nil {
		return []string{fmt.Sprintf("MultipleCheckbox field %q missing or invalid options array", field.Name)}
	}
	return nil
}

func lintCheckbox(field schema.Field) []string {
	if field.Options != nil && len(field.Options) == 0 {
		return []string{fmt.Sprintf("Checkbox field %q has invalid options array", field.Name)}
	}
	return nil
}

func lintDropdown(field schema.Field) []string {
	if field.Options == nil && field.Categories == nil {
		return []string{fmt.Sprintf("Dropdown field %q missing or invalid options array or categories object", field.Name)}
	}
	return nil
}

func lintRadio(field schema.Field) []string {
	if len(field.Options) == 0 {
		return []string{fmt.Sprintf("Radio field %q missing or empty options array", field.Name)}
	}
	return nil
}

func lintTable(field schema.Field) []string {
	if !field.HasTableData && (len(field.Headers) == 0 || len(field.Rows) == 0) {
		return []string{fmt.Sprintf("Table field %q missing table structure (headers, rows, or tableData)", field.Name)}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	scalar := func(tag string, aliases ...string) {
		r.Register(Entry{
			Type:         tag,
			Value:        ValueString,
			DefaultValue: emptyStringDefault,
		}, aliases...)
	}

	scalar(TypeText)
	scalar(TypePhone, "tel")
	scalar(TypeTextarea)
	scalar(TypeDate)
	scalar(TypeSignature)

	r.Register(Entry{
		Type:         TypeNumber,
		Value:        ValueString,
		DefaultValue: emptyStringDefault,
		Validate:     validateNumber,
	})

	r.Register(Entry{
		Type:         TypeEmail,
		Value:        ValueString,
		DefaultValue: emptyStringDefault,
		Validate:     validateEmail,
	})

	// checkbox is two types in one tag: options present makes it a
	// multi-select set, bare it is a boolean. DefaultValue and the
	// validator's fill check both branch on the field shape.
	r.Register(Entry{
		Type:         TypeCheckbox,
		Value:        ValueSet,
		DefaultValue: checkboxDefault,
		Lint:         lintCheckbox,
	})

	r.Register(Entry{
		Type:         TypeMultiCheckbox,
		Value:        ValueSet,
		DefaultValue: multiCheckboxDefault,
		Lint:         lintMultiCheckbox,
	})

	r.Register(Entry{
		Type:         TypeRadio,
		Value:        ValueString,
		DefaultValue: selectionDefault,
		Lint:         lintRadio,
	})

	r.Register(Entry{
		Type:         TypeDropdown,
		Value:        ValueString,
		DefaultValue: selectionDefault,
		Lint:         lintDropdown,
	}, "select")

	r.Register(Entry{
		Type:   TypeTable,
		Value:  ValueComposite,
		Expand: expandTable,
		Lint:   lintTable,
	})

	r.Register(Entry{
		Type:   TypeAssessment,
		Value:  ValueComposite,
		Expand: expandAssessment,
	})

	r.Register(Entry{
		Type:   TypeRatingMatrix,
		Value:  ValueComposite,
		Expand: expandRatingMatrix,
	}, "ratingMatrix")

	r.Register(Entry{
		Type:   TypeCheckboxMatrix,
		Value:  ValueComposite,
		Expand: expandCheckboxMatrix,
	}, "checkboxMatrix", "evidenceMatrix")

	r.Register(Entry{Type: TypeInfo, Value: ValueNone})
	r.Register(Entry{Type: TypeLabel, Value: ValueNone})
}

// Default is the shared registry most callers use.
var defaultRegistry = NewRegistry()

// Default returns the package-level registry with the built-in types.
func Default() *Registry {
	return defaultRegistry
}
