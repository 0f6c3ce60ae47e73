package validation

import (
	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// FieldErrors runs the same pass as Validate but keys the first error per
// answer unit by its field name, the shape form UIs attach messages with.
// Composite fields report under each unanswered unit's key rather than the
// owning field's name.
func FieldErrors(fields []schema.Field, store answers.Store, opts Options) map[string]string {
	if opts.Mode == "" {
		opts.Mode = ModeFull
	}
	reg := opts.Registry
	if reg == nil {
		reg = catalog.Default()
	}

	out := make(map[string]string)
	record := func(key, message string) {
		if key == "" || message == "" {
			return
		}
		if _, exists := out[key]; !exists {
			out[key] = message
		}
	}

	for _, field := range fields {
		entry, _ := reg.Resolve(field.Type)
		if entry.Unsupported || entry.Informational() {
			continue
		}

		if entry.Composite() {
			if entry.Expand == nil {
				continue
			}
			for _, unit := range entry.Expand(field) {
				if opts.Mode != ModeFull || !unit.Required || unit.Kind == catalog.ValueBool {
					continue
				}
				if store.String(unit.Key) == "" {
					record(unit.Key, requiredError(field))
				}
			}
			continue
		}

		_, errs := checkAnswer(field, entry, store, opts.Mode)
		if len(errs) > 0 {
			record(field.Name, errs[0])
		}
	}
	return out
}
