package flatten

import (
	"fmt"

	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// Flatten walks a parsed form and returns the single ordered sequence of
// canonical fields: explicit section fields in authoring order plus the
// fields synthesized from free-form content. It is pure and total; malformed
// sections contribute nothing rather than failing.
//
// Flat-mode structures are returned unchanged. In sectioned mode the output
// order is section order, then field order within the section, then
// synthesis order, and every non-empty field name is unique within the
// result.
func Flatten(form *schema.Form) []schema.Field {
	if form == nil {
		return nil
	}
	if form.Layout == schema.LayoutFlat {
		return append([]schema.Field(nil), form.Fields...)
	}

	var out []schema.Field
	seen := make(map[string]struct{})
	add := func(field schema.Field, token string) {
		field.Name = uniqueName(seen, token, field.Name)
		if field.Name != "" {
			seen[field.Name] = struct{}{}
		}
		out = append(out, field)
	}

	for _, section := range form.Sections {
		token := section.KeyOrIndex()
		switch section.Layout {
		case schema.SectionFields:
			for _, field := range section.Fields {
				field.SectionTitle = section.Title
				add(field, token)
			}
		case schema.SectionContent:
			add(acknowledgementField(section), token)
			for _, field := range section.Content.Fields {
				field.SectionTitle = section.Title
				field.Synthetic = true
				add(field, token)
			}
			for _, unit := range section.Content.Units {
				for _, field := range unitFields(unit) {
					field.SectionTitle = section.Title
					add(field, token)
				}
			}
		}
	}
	return out
}

// acknowledgementField is the required checkbox synthesized for every
// section that carries content instead of an explicit field list.
func acknowledgementField(section schema.Section) schema.Field {
	return schema.Field{
		Name:         section.KeyOrIndex() + "_acknowledgement",
		Type:         catalog.TypeCheckbox,
		Label:        "Acknowledgement",
		Required:     true,
		Synthetic:    true,
		SectionTitle: section.Title,
	}
}

// uniqueName guarantees the flattened sequence never carries two fields
// under one name. Collisions are disambiguated by prefixing the section
// token, then a counter. Nameless fields pass through for the validator to
// flag.
func uniqueName(seen map[string]struct{}, token, name string) string {
	if name == "" {
		return ""
	}
	if _, taken := seen[name]; !taken {
		return name
	}
	prefixed := token + "_" + name
	if _, taken := seen[prefixed]; !taken {
		return prefixed
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", prefixed, i)
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
	}
}
