// Package validation evaluates a structural and semantic pass over the
// canonical field sequence and its answer state, producing a report of
// errors, warnings, and fill statistics. Validation here is advisory and
// client-facing; it never throws and it is not a server-side authority
// check.
package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// Mode selects how much the pass enforces.
type Mode string

const (
	// ModeFull checks required-field completeness, formats, and structure.
	ModeFull Mode = "full"
	// ModeRelaxed skips required-field completeness; format checks and
	// structural warnings still run.
	ModeRelaxed Mode = "relaxed"
)

// Options configures a validation pass.
type Options struct {
	Mode     Mode
	Registry *catalog.Registry
}

// Report is the structured validation outcome. It is recomputed wholesale on
// every pass, never partially mutated.
type Report struct {
	Valid                bool           `json:"valid"`
	Errors               []string       `json:"errors"`
	Warnings             []string       `json:"warnings"`
	FieldCounts          map[string]int `json:"fieldCounts"`
	TotalFields          int            `json:"totalFields"`
	RequiredFields       int            `json:"requiredFields"`
	FilledRequiredFields int            `json:"filledRequiredFields"`
}

// Validate runs one pass over the canonical fields and the current answer
// state. It is pure and deterministic given its inputs: unknown answer keys
// are ignored, and an empty field sequence yields an invalid report with a
// single explanatory error rather than a fault.
func Validate(fields []schema.Field, store answers.Store, opts Options) Report {
	report := Report{
		Valid:       true,
		Errors:      []string{},
		Warnings:    []string{},
		FieldCounts: map[string]int{},
	}
	if opts.Mode == "" {
		opts.Mode = ModeFull
	}
	reg := opts.Registry
	if reg == nil {
		reg = catalog.Default()
	}

	if len(fields) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "No form data to validate")
		return report
	}

	for _, field := range fields {
		report.TotalFields++
		report.FieldCounts[countTag(field)]++

		entry, _ := reg.Resolve(field.Type)
		if entry.Unsupported || entry.Informational() {
			lintField(&report, field, false)
			continue
		}

		if field.Required {
			report.RequiredFields++
		}

		filled, errs := checkAnswer(field, entry, store, opts.Mode)
		if field.Required && filled {
			report.FilledRequiredFields++
		}
		report.Errors = append(report.Errors, errs...)

		lintField(&report, field, true)
		if entry.Lint != nil {
			report.Warnings = append(report.Warnings, entry.Lint(field)...)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// countTag tallies fields under their authored fieldType; nameless tags
// group under "unknown".
func countTag(field schema.Field) string {
	if field.Type == "" {
		return "unknown"
	}
	return field.Type
}

// checkAnswer evaluates the required-completeness and format rules for one
// field. It reports whether the answer counts as filled; a non-empty value
// that fails its format check does not.
func checkAnswer(field schema.Field, entry catalog.Entry, store answers.Store, mode Mode) (bool, []string) {
	var errs []string

	if entry.Composite() {
		filled := compositeFilled(field, entry, store)
		if mode == ModeFull && field.Required && !filled {
			errs = append(errs, requiredError(field))
		}
		return filled, errs
	}

	value := store[field.Name]
	filled := answerPresent(field, value)

	if mode == ModeFull && field.Required && !filled {
		errs = append(errs, requiredError(field))
	}

	if entry.Validate != nil {
		formatErrs := entry.Validate(field, value)
		if len(formatErrs) > 0 {
			errs = append(errs, formatErrs...)
			filled = false
		}
	}
	return filled, errs
}

// compositeFilled decides completeness for matrix and table fields. Choice
// matrices need every question answered; a boolean matrix counts as filled
// once any cell is ticked, since its cells are individually optional marks.
func compositeFilled(field schema.Field, entry catalog.Entry, store answers.Store) bool {
	if entry.Expand == nil {
		return false
	}
	units := entry.Expand(field)
	if len(units) == 0 {
		return false
	}

	anyBool := false
	for _, unit := range units {
		switch unit.Kind {
		case catalog.ValueBool:
			if store.Bool(unit.Key) {
				anyBool = true
			}
		default:
			if strings.TrimSpace(store.String(unit.Key)) == "" {
				return false
			}
		}
	}
	if units[0].Kind == catalog.ValueBool {
		return anyBool
	}
	return true
}

func answerPresent(field schema.Field, value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case float64:
		return true
	default:
		return !answers.IsEmptyValue(value)
	}
}

func requiredError(field schema.Field) string {
	ref := field.Label
	if ref == "" {
		ref = field.Name
	}
	return fmt.Sprintf("Required field %q is not filled", ref)
}

// lintField warns about structural gaps. A missing label only matters on
// interactive fields: informational and unsupported types never show one.
func lintField(report *Report, field schema.Field, interactive bool) {
	if field.Name == "" {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Field in section %q missing fieldName", field.SectionTitle))
	}
	if interactive && field.Label == "" {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Field %q missing label", field.Name))
	}
}
