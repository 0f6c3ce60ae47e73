package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/schema"
)

func TestResolve_Aliases(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		alias  string
		expect string
	}{
		{"tel", TypePhone},
		{"select", TypeDropdown},
		{"ratingMatrix", TypeRatingMatrix},
		{"checkboxMatrix", TypeCheckboxMatrix},
		{"evidenceMatrix", TypeCheckboxMatrix},
	}
	for _, tc := range cases {
		entry, ok := reg.Resolve(tc.alias)
		if !ok || entry.Type != tc.expect {
			t.Fatalf("alias %q: want %q, got %q (ok=%v)", tc.alias, tc.expect, entry.Type, ok)
		}
		if reg.Canonical(tc.alias) != tc.expect {
			t.Fatalf("canonical %q: got %q", tc.alias, reg.Canonical(tc.alias))
		}
	}
}

func TestResolve_UnknownFallsBackToUnsupported(t *testing.T) {
	reg := NewRegistry()

	entry, ok := reg.Resolve("hologram")
	if ok {
		t.Fatal("unknown tag should not report recognized")
	}
	if !entry.Unsupported || entry.Type != "hologram" {
		t.Fatalf("unsupported entry: %+v", entry)
	}
	// Unknown tags keep their authored name for fieldCounts.
	if reg.Canonical("hologram") != "hologram" {
		t.Fatalf("canonical for unknown: %q", reg.Canonical("hologram"))
	}
}

func TestExpandAssessment_Keys(t *testing.T) {
	field := schema.Field{
		Name: "skills",
		Questions: []schema.Question{
			{ID: "q_comm", Text: "Communicates", Options: []string{"Yes", "No"}},
			{Text: "Listens"},
		},
	}

	units := expandAssessment(field)
	if len(units) != 2 {
		t.Fatalf("units: %d", len(units))
	}
	if units[0].Key != "skills_q_comm" {
		t.Fatalf("explicit id key: %q", units[0].Key)
	}
	if diff := cmp.Diff([]string{"Yes", "No"}, units[0].Options); diff != "" {
		t.Fatalf("explicit options (-want +got):\n%s", diff)
	}
	if units[1].Key != "skills_1" {
		t.Fatalf("positional key: %q", units[1].Key)
	}
	if diff := cmp.Diff(DefaultMatrixOptions, units[1].Options); diff != "" {
		t.Fatalf("fallback options (-want +got):\n%s", diff)
	}
}

func TestExpandRatingMatrix_Keys(t *testing.T) {
	field := schema.Field{
		Name:      "review",
		Options:   []string{"Low", "High"},
		Questions: []schema.Question{{Text: "Quality"}, {Text: "Speed"}},
	}

	units := expandRatingMatrix(field)
	if units[0].Key != "review_question_0" || units[1].Key != "review_question_1" {
		t.Fatalf("keys: %q %q", units[0].Key, units[1].Key)
	}
	if diff := cmp.Diff([]string{"Low", "High"}, units[0].Options); diff != "" {
		t.Fatalf("shared options (-want +got):\n%s", diff)
	}
}

func TestExpandCheckboxMatrix_Keys(t *testing.T) {
	field := schema.Field{Name: "sites", Units: []string{"Office", "Depot"}}

	units := expandCheckboxMatrix(field)
	if units[0].Key != "sites_Office" || units[1].Key != "sites_Depot" {
		t.Fatalf("keys: %q %q", units[0].Key, units[1].Key)
	}
	if units[0].Kind != ValueBool || units[0].Default != false {
		t.Fatalf("cell shape: %+v", units[0])
	}
}

func TestExpandTable(t *testing.T) {
	field := schema.Field{
		Name:            "roster",
		Headers:         []string{"Day", "Hours"},
		Rows:            [][]string{{"Mon", "8"}, {"Tue", "6"}},
		EditableColumns: []int{1},
	}

	units := expandTable(field)
	if len(units) != 2 {
		t.Fatalf("units: %d", len(units))
	}
	if units[0].Key != "roster_row0_col1" || units[0].Default != "8" {
		t.Fatalf("cell 0: %+v", units[0])
	}
	if units[1].Key != "roster_row1_col1" || units[1].Default != "6" {
		t.Fatalf("cell 1: %+v", units[1])
	}

	// Out-of-range columns are skipped, and a table with no editable
	// columns is display-only.
	field.EditableColumns = []int{5}
	if got := expandTable(field); len(got) != 0 {
		t.Fatalf("out-of-range column expanded: %+v", got)
	}
	field.EditableColumns = nil
	if got := expandTable(field); got != nil {
		t.Fatalf("display-only table expanded: %+v", got)
	}
}

func TestValidateEmail(t *testing.T) {
	field := schema.Field{Name: "email", Label: "Email Address"}

	if errs := validateEmail(field, "ada@example.com"); len(errs) != 0 {
		t.Fatalf("valid email flagged: %v", errs)
	}
	if errs := validateEmail(field, ""); len(errs) != 0 {
		t.Fatalf("empty value is not a format error: %v", errs)
	}

	errs := validateEmail(field, "not-an-email")
	if len(errs) != 1 || errs[0] != `Field "Email Address" must be a valid email` {
		t.Fatalf("invalid email message: %v", errs)
	}
}

func TestValidateNumber(t *testing.T) {
	field := schema.Field{Name: "hours"}

	if errs := validateNumber(field, "12.5"); len(errs) != 0 {
		t.Fatalf("valid number flagged: %v", errs)
	}
	errs := validateNumber(field, "twelve")
	if len(errs) != 1 || errs[0] != `Field "hours" must be a number` {
		t.Fatalf("invalid number message: %v", errs)
	}
}

func TestLint_StructuralWarnings(t *testing.T) {
	cases := []struct {
		name   string
		typ    string
		field  schema.Field
		expect int
	}{
		{"multipleCheckbox without options", TypeMultiCheckbox, schema.Field{Name: "m"}, 1},
		{"checkbox without options is bare", TypeCheckbox, schema.Field{Name: "c"}, 0},
		{"checkbox with empty options", TypeCheckbox, schema.Field{Name: "c", Options: []string{}}, 1},
		{"dropdown with categories only", TypeDropdown, schema.Field{Name: "d", Categories: map[string][]string{}}, 0},
		{"dropdown with neither", TypeDropdown, schema.Field{Name: "d"}, 1},
		{"radio with empty options", TypeRadio, schema.Field{Name: "r", Options: []string{}}, 1},
		{"table with structure", TypeTable, schema.Field{Name: "t", Headers: []string{"A"}, Rows: [][]string{{"1"}}}, 0},
		{"table with tableData only", TypeTable, schema.Field{Name: "t", HasTableData: true}, 0},
		{"table missing structure", TypeTable, schema.Field{Name: "t", Headers: []string{"A"}}, 1},
	}

	reg := NewRegistry()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := reg.Resolve(tc.typ)
			if !ok || entry.Lint == nil {
				t.Fatalf("entry for %q has no lint", tc.typ)
			}
			if got := entry.Lint(tc.field); len(got) != tc.expect {
				t.Fatalf("warnings: want %d, got %v", tc.expect, got)
			}
		})
	}
}

func TestRegister_CustomType(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{
		Type:         "slider",
		Value:        ValueString,
		DefaultValue: func(schema.Field) any { return "50" },
	}, "range")

	entry, ok := reg.Resolve("range")
	if !ok || entry.Type != "slider" {
		t.Fatalf("custom alias: %+v (ok=%v)", entry, ok)
	}
	if entry.DefaultValue(schema.Field{}) != "50" {
		t.Fatal("custom default not used")
	}
}
