package schema

import "strconv"

// Layout describes how a form structure was authored. The shape is resolved
// once at parse time so downstream consumers never re-inspect raw JSON.
type Layout string

const (
	// LayoutFlat marks a formStructure that is a bare field array.
	LayoutFlat Layout = "flat"
	// LayoutSections marks a formStructure made of titled sections.
	LayoutSections Layout = "sections"
)

// SectionLayout describes what drives field derivation for a section.
type SectionLayout string

const (
	// SectionFields marks a section with an explicit fields array.
	SectionFields SectionLayout = "fields"
	// SectionContent marks a section whose fields are derived from free-form
	// content.
	SectionContent SectionLayout = "content"
	// SectionEmpty marks a section with neither fields nor content.
	SectionEmpty SectionLayout = "empty"
)

// Form is the root template document. It is immutable once parsed; loading a
// new template replaces the whole value, it is never merged.
type Form struct {
	Name        string
	Description string
	StepNumber  string
	FilledBy    string
	Layout      Layout

	// Sections is populated in LayoutSections mode.
	Sections []Section
	// Fields is populated in LayoutFlat mode.
	Fields []Field

	raw []byte
}

// Section is one titled grouping inside a sectioned form.
type Section struct {
	// Key is the explicit section identifier when the template supplies one.
	Key string
	// Index is the section's position inside formStructure.
	Index int
	Title string

	Layout  SectionLayout
	Fields  []Field
	Content Content
}

// KeyOrIndex returns the section identity used for answer naming and
// expansion bookkeeping: the explicit key when present, otherwise the
// positional index.
func (s Section) KeyOrIndex() string {
	if s.Key != "" {
		return s.Key
	}
	return strconv.Itoa(s.Index)
}

// Content is the loosely-typed body of a section that carries no explicit
// fields array. Exactly one of Fields/Units is typically populated; Extra
// preserves the remaining object keys (steps, rules, purposes, ...) for
// display-side consumers.
type Content struct {
	Present bool

	// Fields holds a content.fields array when the content is an object.
	Fields []Field
	// Units holds unit-competency entries when the content itself is an
	// array of unit-like objects.
	Units []Unit
	// Extra carries the content object keys not interpreted here.
	Extra map[string]any
}

// Field is the canonical addressable unit of a form.
type Field struct {
	Name        string
	Type        string
	Label       string
	Description string
	Text        string
	Placeholder string
	Required    bool
	Default     any

	// Options drives choice-bearing types.
	Options []string
	// Categories is the dropdown grouping alternative to Options. Entries
	// are flattened to "code - name" strings at parse time. A non-nil map
	// records that the template supplied a categories object even when the
	// groups are empty.
	Categories map[string][]string
	// Questions drives assessmentMatrix and rating-matrix types.
	Questions []Question
	// Units lists checkbox-matrix column headers.
	Units []string

	// Table shape.
	Headers         []string
	Rows            [][]string
	EditableColumns []int
	// HasTableData records that the template supplied a tableData member,
	// which satisfies the table structure contract on its own.
	HasTableData bool

	// Synthetic marks fields derived from section content rather than an
	// explicit fields array.
	Synthetic bool
	// SectionTitle names the owning section once the field has been
	// flattened. Empty for flat-mode fields.
	SectionTitle string
}

// Question is one row of an assessment or rating matrix.
type Question struct {
	// ID is the explicit questionId when present. Answer keys fall back to
	// the positional index otherwise; see Key.
	ID      string
	Text    string
	Options []string
}

// Key returns the answer-key token for the question at the given position.
// When the template omits questionId the position stands in, which silently
// reassigns saved answers if questions are ever reordered; callers that
// persist answers long-term should prefer explicit ids.
func (q Question) Key(index int) string {
	if q.ID != "" {
		return q.ID
	}
	return strconv.Itoa(index)
}

// Unit is one unit-competency entry inside array-shaped section content.
type Unit struct {
	Code string
	Name string

	ReadCompetencyStandards *OptionPrompt
	Competencies            []Competency
	AdditionalInformation   *Prompt
	ThirdPartySignature     *Prompt
	Date                    *Prompt
	RTOUseOnly              *RTOUseOnly
}

// Competency is a single competency row within a unit.
type Competency struct {
	Description string
	Frequency   *OptionPrompt
	Explanation *Prompt
}

// Prompt is a labelled sub-structure that generates one synthetic field.
type Prompt struct {
	Label string
}

// OptionPrompt is a labelled sub-structure with an option list.
type OptionPrompt struct {
	Label   string
	Options []string
}

// RTOUseOnly groups the assessor-facing sub-fields of a unit.
type RTOUseOnly struct {
	AssessorName     *Prompt
	Verified         *OptionPrompt
	VerificationDate *Prompt
}
