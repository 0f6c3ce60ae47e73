package schema

import (
	"regexp"
	"sort"
	"strings"
)

// Info summarises template metadata for header display: name, description,
// authoring metadata, and declared counts. DeclaredFields counts only
// explicit section field arrays, not synthesized fields.
type Info struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	StepNumber     string `json:"stepNumber,omitempty"`
	FilledBy       string `json:"filledBy,omitempty"`
	TotalSections  int    `json:"totalSections"`
	DeclaredFields int    `json:"declaredFields"`
}

// Info returns the display summary for the form.
func (f *Form) Info() Info {
	if f == nil {
		return Info{}
	}
	info := Info{
		Name:        f.Name,
		Description: f.Description,
		StepNumber:  f.StepNumber,
		FilledBy:    f.FilledBy,
	}
	switch f.Layout {
	case LayoutFlat:
		info.DeclaredFields = len(f.Fields)
	default:
		info.TotalSections = len(f.Sections)
		for _, section := range f.Sections {
			info.DeclaredFields += len(section.Fields)
		}
	}
	return info
}

// ChoiceOptions returns the selectable values for a choice-bearing field:
// the explicit options array when present, otherwise the flattened
// categories entries in sorted group order so the sequence is deterministic.
func (f Field) ChoiceOptions() []string {
	if len(f.Options) > 0 {
		return f.Options
	}
	if len(f.Categories) == 0 {
		return nil
	}
	groups := make([]string, 0, len(f.Categories))
	for group := range f.Categories {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	var out []string
	for _, group := range groups {
		out = append(out, f.Categories[group]...)
	}
	return out
}

var (
	usiPattern           = regexp.MustCompile(`\busi\b`)
	uniqueStudentPattern = regexp.MustCompile(`unique\s+student\s+identifier`)
	dobPattern           = regexp.MustCompile(`\b(dob|date\s*of\s*birth|birth)\b`)
)

// IsUSIField reports whether a field captures a Unique Student Identifier,
// matching "usi" on a word boundary or the spelled-out phrase in the field
// name, label, or owning section title.
func IsUSIField(field Field, sectionTitle string) bool {
	label := strings.ToLower(field.Label)
	name := strings.ToLower(field.Name)
	title := strings.ToLower(sectionTitle)
	return usiPattern.MatchString(label) || uniqueStudentPattern.MatchString(label) ||
		usiPattern.MatchString(name) || uniqueStudentPattern.MatchString(name) ||
		usiPattern.MatchString(title) || uniqueStudentPattern.MatchString(title)
}

// IsDateOfBirthField reports whether a date field captures a birth date.
// Consumers use it to invert the usual no-backdating rule: birth dates must
// be in the past, every other date field in the future.
func IsDateOfBirthField(field Field) bool {
	return dobPattern.MatchString(strings.ToLower(field.Name)) ||
		dobPattern.MatchString(strings.ToLower(field.Label))
}
