package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/internal/sanitize"
)

// Parse decodes a raw JSON form template. Templates are attacker-adjacent
// input: the parser never panics, degrades missing or misshapen members to
// empty derivations, and strips markup from every display string. Only a
// document that is not valid JSON at all is rejected.
func Parse(raw []byte) (*Form, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("schema: template is empty")
	}

	var doc documentJSON
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse template: %w", err)
	}

	form := &Form{
		Name:        sanitize.Text(flexString(doc.Name)),
		Description: sanitize.Text(flexString(doc.Description)),
		StepNumber:  flexString(doc.StepNumber),
		FilledBy:    sanitize.Text(filledByString(doc.FilledBy)),
		raw:         append([]byte(nil), trimmed...),
	}

	form.Layout, form.Sections, form.Fields = decodeStructure(doc.FormStructure)
	return form, nil
}

// filledByString renders the filledBy member, which templates author either
// as a single string or as an array of roles.
func filledByString(value any) string {
	if roles, ok := value.([]any); ok {
		return strings.Join(stringSlice(roles), ", ")
	}
	return flexString(value)
}

// ParseYAML decodes a YAML-authored template by normalising it to the same
// loose document shape Parse handles.
func ParseYAML(raw []byte) (*Form, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("schema: template is empty")
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml template: %w", err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: normalise yaml template: %w", err)
	}
	return Parse(jsonBytes)
}

// Raw returns the original template bytes as parsed. Export snapshots embed
// this verbatim so the round-tripped structure stays bit-compatible with the
// document the caller supplied.
func (f *Form) Raw() json.RawMessage {
	if f == nil || len(f.raw) == 0 {
		return nil
	}
	return json.RawMessage(f.raw)
}

// MarshalJSON re-emits the original document when available.
func (f *Form) MarshalJSON() ([]byte, error) {
	if raw := f.Raw(); raw != nil {
		return raw, nil
	}
	return []byte("null"), nil
}

type documentJSON struct {
	Name          any             `json:"name"`
	Description   any             `json:"description"`
	StepNumber    any             `json:"stepNumber"`
	FilledBy      any             `json:"filledBy"`
	FormStructure json.RawMessage `json:"formStructure"`
}

func decodeStructure(raw json.RawMessage) (Layout, []Section, []Field) {
	var elements []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elements) != nil {
		return LayoutSections, nil, nil
	}

	if !hasSectionIdentity(elements) {
		fields := make([]Field, 0, len(elements))
		for _, el := range elements {
			var field Field
			if err := json.Unmarshal(el, &field); err != nil {
				continue
			}
			fields = append(fields, field)
		}
		return LayoutFlat, nil, fields
	}

	sections := make([]Section, 0, len(elements))
	for idx, el := range elements {
		section := decodeSection(el, idx)
		sections = append(sections, section)
	}
	return LayoutSections, sections, nil
}

// hasSectionIdentity reports whether any structure element carries a
// section/sectionTitle wrapper. A structure with none is a bare field array.
func hasSectionIdentity(elements []json.RawMessage) bool {
	for _, el := range elements {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(el, &probe); err != nil {
			continue
		}
		if _, ok := probe["section"]; ok {
			return true
		}
		if _, ok := probe["sectionTitle"]; ok {
			return true
		}
	}
	return false
}

type sectionJSON struct {
	Section      any             `json:"section"`
	SectionTitle any             `json:"sectionTitle"`
	Fields       []Field         `json:"fields"`
	Content      json.RawMessage `json:"content"`
}

func decodeSection(raw json.RawMessage, index int) Section {
	section := Section{Index: index, Layout: SectionEmpty}

	var aux sectionJSON
	if err := json.Unmarshal(raw, &aux); err != nil {
		return section
	}

	section.Key = flexString(aux.Section)
	section.Title = sanitize.Text(flexString(aux.SectionTitle))
	section.Fields = aux.Fields
	section.Content = decodeContent(aux.Content)

	switch {
	case aux.Fields != nil:
		section.Layout = SectionFields
	case section.Content.Present:
		section.Layout = SectionContent
	}
	return section
}

func decodeContent(raw json.RawMessage) Content {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Content{}
	}

	content := Content{Present: true}
	switch trimmed[0] {
	case '[':
		var units []Unit
		if err := json.Unmarshal(trimmed, &units); err == nil {
			content.Units = units
		}
	case '{':
		var aux struct {
			Fields []Field `json:"fields"`
		}
		if err := json.Unmarshal(trimmed, &aux); err == nil {
			content.Fields = aux.Fields
		}
		var extra map[string]any
		if err := json.Unmarshal(trimmed, &extra); err == nil {
			delete(extra, "fields")
			if len(extra) > 0 {
				content.Extra = extra
			}
		}
	}
	return content
}

type fieldJSON struct {
	FieldName       any             `json:"fieldName"`
	FieldType       any             `json:"fieldType"`
	Label           any             `json:"label"`
	Description     any             `json:"description"`
	Text            any             `json:"text"`
	Placeholder     any             `json:"placeholder"`
	Required        any             `json:"required"`
	Default         any             `json:"default"`
	Options         []any           `json:"options"`
	Categories      map[string]any  `json:"categories"`
	Questions       []Question      `json:"questions"`
	Units           []any           `json:"units"`
	Headers         []any           `json:"headers"`
	Rows            [][]any         `json:"rows"`
	EditableColumns []any           `json:"editableColumns"`
	TableData       json.RawMessage `json:"tableData"`
}

// UnmarshalJSON tolerates the loose member typing the template dialect
// allows: numeric names, string-or-number cells, option arrays with mixed
// scalars.
func (f *Field) UnmarshalJSON(data []byte) error {
	var aux fieldJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		// Misshapen entries degrade to an empty field rather than failing
		// the whole template.
		*f = Field{}
		return nil
	}

	*f = Field{
		Name:        flexString(aux.FieldName),
		Type:        strings.TrimSpace(flexString(aux.FieldType)),
		Label:       sanitize.Text(flexString(aux.Label)),
		Description: sanitize.Text(flexString(aux.Description)),
		Text:        sanitize.Text(flexString(aux.Text)),
		Placeholder: sanitize.Text(flexString(aux.Placeholder)),
		Required:    truthy(aux.Required),
		Default:     aux.Default,
		Options:     stringSlice(aux.Options),
		Categories:  decodeCategories(aux.Categories),
		Questions:   aux.Questions,
		Units:       stringSlice(aux.Units),
		Headers:     stringSlice(aux.Headers),
		Rows:        stringMatrix(aux.Rows),
	}
	f.EditableColumns = intSlice(aux.EditableColumns)
	trimmedTable := bytes.TrimSpace(aux.TableData)
	f.HasTableData = len(trimmedTable) > 0 && !bytes.Equal(trimmedTable, []byte("null"))
	return nil
}

// decodeCategories flattens the dropdown categories object into one option
// string per entry: "<code> - <name>" for coded entries, the literal value
// for plain strings. A non-nil result records that the object was present.
func decodeCategories(raw map[string]any) map[string][]string {
	if raw == nil {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for group, value := range raw {
		items, ok := value.([]any)
		if !ok {
			continue
		}
		entries := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				entries = append(entries, v)
			case map[string]any:
				code := flexString(v["code"])
				name := flexString(v["name"])
				if code != "" && name != "" {
					entries = append(entries, code+" - "+name)
				}
			}
		}
		out[group] = entries
	}
	return out
}

// UnmarshalJSON accepts both the object question shape used by assessment
// matrices and the bare string shape used by rating matrices.
func (q *Question) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*q = Question{Text: sanitize.Text(text)}
		return nil
	}

	var aux struct {
		QuestionID any   `json:"questionId"`
		Question   any   `json:"question"`
		Options    []any `json:"options"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		*q = Question{}
		return nil
	}
	*q = Question{
		ID:      flexString(aux.QuestionID),
		Text:    sanitize.Text(flexString(aux.Question)),
		Options: stringSlice(aux.Options),
	}
	return nil
}

type unitJSON struct {
	UnitCode                any             `json:"unitCode"`
	UnitName                any             `json:"unitName"`
	ReadCompetencyStandards json.RawMessage `json:"readCompetencyStandards"`
	Competencies            []Competency    `json:"competencies"`
	AdditionalInformation   json.RawMessage `json:"additionalInformation"`
	ThirdPartySignature     json.RawMessage `json:"thirdPartySignature"`
	Date                    json.RawMessage `json:"date"`
	RTOUseOnly              json.RawMessage `json:"rtoUseOnly"`
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var aux unitJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		*u = Unit{}
		return nil
	}
	*u = Unit{
		Code:                    flexString(aux.UnitCode),
		Name:                    sanitize.Text(flexString(aux.UnitName)),
		ReadCompetencyStandards: optionPromptFrom(aux.ReadCompetencyStandards),
		Competencies:            aux.Competencies,
		AdditionalInformation:   promptFrom(aux.AdditionalInformation),
		ThirdPartySignature:     promptFrom(aux.ThirdPartySignature),
		Date:                    promptFrom(aux.Date),
	}
	if rto := bytes.TrimSpace(aux.RTOUseOnly); len(rto) > 0 && !bytes.Equal(rto, []byte("null")) {
		var rtoAux struct {
			AssessorName     json.RawMessage `json:"assessorName"`
			Verified         json.RawMessage `json:"verified"`
			VerificationDate json.RawMessage `json:"verificationDate"`
		}
		if err := json.Unmarshal(rto, &rtoAux); err == nil {
			u.RTOUseOnly = &RTOUseOnly{
				AssessorName:     promptFrom(rtoAux.AssessorName),
				Verified:         optionPromptFrom(rtoAux.Verified),
				VerificationDate: promptFrom(rtoAux.VerificationDate),
			}
		}
	}
	return nil
}

func (c *Competency) UnmarshalJSON(data []byte) error {
	var aux struct {
		Description any             `json:"description"`
		Frequency   json.RawMessage `json:"frequency"`
		Explanation json.RawMessage `json:"explanation"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		*c = Competency{}
		return nil
	}
	*c = Competency{
		Description: sanitize.Text(flexString(aux.Description)),
		Frequency:   optionPromptFrom(aux.Frequency),
		Explanation: promptFrom(aux.Explanation),
	}
	return nil
}

// promptFrom interprets a presence-driven sub-structure. Absent, null, and
// false all mean "no such sub-field"; any other value marks the prompt as
// present, with a label when one can be read.
func promptFrom(raw json.RawMessage) *Prompt {
	trimmed := bytes.TrimSpace(raw)
	if !presentValue(trimmed) {
		return nil
	}
	prompt := &Prompt{}
	switch trimmed[0] {
	case '{':
		var aux struct {
			Label any `json:"label"`
		}
		if err := json.Unmarshal(trimmed, &aux); err == nil {
			prompt.Label = sanitize.Text(flexString(aux.Label))
		}
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			prompt.Label = sanitize.Text(text)
		}
	}
	return prompt
}

func optionPromptFrom(raw json.RawMessage) *OptionPrompt {
	trimmed := bytes.TrimSpace(raw)
	if !presentValue(trimmed) {
		return nil
	}
	prompt := &OptionPrompt{}
	if trimmed[0] == '{' {
		var aux struct {
			Label   any   `json:"label"`
			Options []any `json:"options"`
		}
		if err := json.Unmarshal(trimmed, &aux); err == nil {
			prompt.Label = sanitize.Text(flexString(aux.Label))
			prompt.Options = stringSlice(aux.Options)
		}
	}
	return prompt
}

func presentValue(trimmed []byte) bool {
	if len(trimmed) == 0 {
		return false
	}
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return false
	case bytes.Equal(trimmed, []byte("false")):
		return false
	}
	return true
}

// flexString renders loosely-typed scalar members (string-or-number ids,
// step numbers, section keys) as strings.
func flexString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// truthy mirrors the loose-boolean convention of the template dialect.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

func stringSlice(values []any) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s := flexString(value); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringMatrix(rows [][]any) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, flexString(cell))
		}
		out = append(out, cells)
	}
	return out
}

func intSlice(values []any) []int {
	if values == nil {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case float64:
			out = append(out, int(v))
		case int:
			out = append(out, v)
		}
	}
	return out
}
