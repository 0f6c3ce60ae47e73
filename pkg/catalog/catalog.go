package catalog

import (
	"fmt"

	"github.com/goliatone/go-formfill/pkg/schema"
)

// Canonical field-type tags. Aliases used by templates in the wild map onto
// these during resolution.
const (
	TypeText           = "text"
	TypePhone          = "phone"
	TypeNumber         = "number"
	TypeEmail          = "email"
	TypeTextarea       = "textarea"
	TypeDate           = "date"
	TypeSignature      = "signature"
	TypeCheckbox       = "checkbox"
	TypeMultiCheckbox  = "multipleCheckbox"
	TypeRadio          = "radio"
	TypeDropdown       = "dropdown"
	TypeTable          = "table"
	TypeAssessment     = "assessmentMatrix"
	TypeRatingMatrix   = "rating-matrix"
	TypeCheckboxMatrix = "checkbox-matrix"
	TypeInfo           = "info"
	TypeLabel          = "label"
)

// Fallback option sets the dialect defines for matrix questions and
// unit-competency prompts that omit their own options.
var (
	DefaultMatrixOptions    = []string{"Never", "Sometimes", "Regularly"}
	DefaultFrequencyOptions = []string{"Often", "Sometimes", "Rarely"}
	DefaultYesNoOptions     = []string{"Yes", "No"}
)

// ValueKind classifies the answer-state shape a field owns.
type ValueKind int

const (
	// ValueNone marks informational fields that never appear in answer
	// state.
	ValueNone ValueKind = iota
	// ValueString marks scalar string answers.
	ValueString
	// ValueBool marks bare-checkbox and matrix-cell booleans.
	ValueBool
	// ValueSet marks deduplicated multi-select answers.
	ValueSet
	// ValueComposite marks fields answered through expanded sub-units
	// rather than under their own name.
	ValueComposite
)

// AnswerUnit is one independently-addressable answer derived from a
// composite field: a matrix question, a matrix cell, or an editable table
// cell.
type AnswerUnit struct {
	Key      string
	Kind     ValueKind
	Label    string
	Options  []string
	Required bool
	Default  any
}

// Entry bundles the per-type semantics the rest of the engine dispatches
// on. New field types are supported by registering a new entry, never by
// widening a shared switch.
type Entry struct {
	// Type is the canonical tag.
	Type string
	// Value is the answer-state shape for fields of this type.
	Value ValueKind
	// Unsupported marks the fallback entry used for unrecognized tags:
	// display-only, excluded from required and format checks.
	Unsupported bool

	// DefaultValue derives the initial answer for a field, honouring the
	// type's empty-value rule and any schema-supplied default. Nil for
	// types with no scalar answer.
	DefaultValue func(field schema.Field) any
	// Expand derives the answer units of a composite field. Nil for
	// scalar types.
	Expand func(field schema.Field) []AnswerUnit
	// Validate runs the type's format check against a non-empty scalar
	// value, returning error messages. Nil when the type has none.
	Validate func(field schema.Field, value any) []string
	// Lint reports structural problems with the field's configuration,
	// independent of any answer.
	Lint func(field schema.Field) []string
}

// Composite reports whether fields of this type answer through expanded
// sub-units instead of their own name.
func (e Entry) Composite() bool {
	return e.Value == ValueComposite
}

// Informational reports whether fields of this type never expect an answer.
func (e Entry) Informational() bool {
	return e.Value == ValueNone
}

func fieldRef(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	if field.Name != "" {
		return field.Name
	}
	return "(unnamed)"
}

func questionOptions(q schema.Question) []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	return DefaultMatrixOptions
}

func ratingOptions(field schema.Field) []string {
	if len(field.Options) > 0 {
		return field.Options
	}
	return DefaultMatrixOptions
}

func expandAssessment(field schema.Field) []AnswerUnit {
	units := make([]AnswerUnit, 0, len(field.Questions))
	for idx, q := range field.Questions {
		units = append(units, AnswerUnit{
			Key:      fmt.Sprintf("%s_%s", field.Name, q.Key(idx)),
			Kind:     ValueString,
			Label:    q.Text,
			Options:  questionOptions(q),
			Required: field.Required,
			Default:  "",
		})
	}
	return units
}

func expandRatingMatrix(field schema.Field) []AnswerUnit {
	options := ratingOptions(field)
	units := make([]AnswerUnit, 0, len(field.Questions))
	for idx, q := range field.Questions {
		units = append(units, AnswerUnit{
			Key:      fmt.Sprintf("%s_question_%d", field.Name, idx),
			Kind:     ValueString,
			Label:    q.Text,
			Options:  options,
			Required: field.Required,
			Default:  "",
		})
	}
	return units
}

func expandCheckboxMatrix(field schema.Field) []AnswerUnit {
	units := make([]AnswerUnit, 0, len(field.Units))
	for _, unit := range field.Units {
		units = append(units, AnswerUnit{
			Key:      fmt.Sprintf("%s_%s", field.Name, unit),
			Kind:     ValueBool,
			Label:    unit,
			Required: field.Required,
			Default:  false,
		})
	}
	return units
}

func expandTable(field schema.Field) []AnswerUnit {
	if len(field.EditableColumns) == 0 {
		return nil
	}
	var units []AnswerUnit
	for rowIdx, row := range field.Rows {
		for _, col := range field.EditableColumns {
			if col < 0 || col >= len(row) {
				continue
			}
			units = append(units, AnswerUnit{
				Key:     fmt.Sprintf("%s_row%d_col%d", field.Name, rowIdx, col),
				Kind:    ValueString,
				Default: row[col],
			})
		}
	}
	return units
}

func emptyStringDefault(schema.Field) any { return "" }

// selectionDefault honours a schema-supplied default literal only when it is
// one of the selectable options.
func selectionDefault(field schema.Field) any {
	literal, ok := field.Default.(string)
	if !ok || literal == "" {
		return ""
	}
	for _, option := range field.ChoiceOptions() {
		if option == literal {
			return literal
		}
	}
	return ""
}

// checkboxDefault covers both checkbox shapes: with options it is a set
// (seeded with the default literal when that names a real option), bare it
// is false.
func checkboxDefault(field schema.Field) any {
	if field.Options == nil {
		return false
	}
	if literal, ok := field.Default.(string); ok && literal != "" {
		for _, option := range field.Options {
			if option == literal {
				return []string{literal}
			}
		}
	}
	return []string{}
}

func multiCheckboxDefault(schema.Field) any {
	return []string{}
}
