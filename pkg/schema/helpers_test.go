package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForm_Info(t *testing.T) {
	form, err := Parse([]byte(`{
		"name": "Enrolment",
		"description": "Candidate enrolment",
		"formStructure": [
			{"section": "a", "fields": [
				{"fieldName": "x", "fieldType": "text"},
				{"fieldName": "y", "fieldType": "text"}
			]},
			{"section": "b", "content": [{"unitCode": "U1"}]}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	info := form.Info()
	if info.Name != "Enrolment" || info.TotalSections != 2 || info.DeclaredFields != 2 {
		t.Fatalf("info: %+v", info)
	}
}

func TestField_ChoiceOptions(t *testing.T) {
	cases := []struct {
		name   string
		field  Field
		expect []string
	}{
		{
			name:   "explicit options win",
			field:  Field{Options: []string{"a"}, Categories: map[string][]string{"g": {"b"}}},
			expect: []string{"a"},
		},
		{
			name: "categories in sorted group order",
			field: Field{Categories: map[string][]string{
				"Second": {"s1"},
				"First":  {"f1", "f2"},
			}},
			expect: []string{"f1", "f2", "s1"},
		},
		{
			name:   "no choices",
			field:  Field{},
			expect: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.field.ChoiceOptions(); !cmp.Equal(got, tc.expect) {
				t.Fatalf("want %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestIsUSIField(t *testing.T) {
	cases := []struct {
		name   string
		field  Field
		title  string
		expect bool
	}{
		{"name token", Field{Name: "usi"}, "", true},
		{"label token", Field{Label: "Your USI number"}, "", true},
		{"spelled out", Field{Label: "Unique Student Identifier"}, "", true},
		{"section title", Field{Name: "identifier"}, "USI Details", true},
		{"substring only", Field{Name: "housing"}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUSIField(tc.field, tc.title); got != tc.expect {
				t.Fatalf("want %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestIsDateOfBirthField(t *testing.T) {
	if !IsDateOfBirthField(Field{Name: "dob"}) {
		t.Fatal("dob name should match")
	}
	if !IsDateOfBirthField(Field{Label: "Date of Birth"}) {
		t.Fatal("label should match")
	}
	if IsDateOfBirthField(Field{Name: "startDate"}) {
		t.Fatal("plain date field should not match")
	}
}
