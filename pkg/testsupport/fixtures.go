package testsupport

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/schema"
)

// MustParseForm parses inline template JSON. Testing helpers fail the
// test on error to keep contract tests concise.
func MustParseForm(t *testing.T, raw string) *schema.Form {
	t.Helper()

	form, err := schema.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return form
}

// LoadForm reads a template fixture from disk and parses it.
func LoadForm(t *testing.T, path string) *schema.Form {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read form fixture: %v", err)
	}
	form, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("parse form fixture: %v", err)
	}
	return form
}

// Diff returns a human-readable diff string if the values differ.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SectionedTemplate is a small two-section template exercising explicit
// fields, content acknowledgements, and unit-of-competency synthesis.
const SectionedTemplate = `{
  "name": "Induction Checklist",
  "description": "Workplace induction and competency sign-off",
  "stepNumber": 2,
  "filledBy": ["candidate", "assessor"],
  "formStructure": [
    {
      "section": "personal",
      "sectionTitle": "Personal Details",
      "fields": [
        {"fieldName": "firstName", "fieldType": "text", "label": "First Name", "required": true},
        {"fieldName": "email", "fieldType": "email", "label": "Email", "required": true},
        {"fieldName": "notes", "fieldType": "textarea", "label": "Notes"}
      ]
    },
    {
      "section": "standards",
      "sectionTitle": "Performance Standards",
      "content": [
        {
          "unitCode": "BSBWHS411",
          "unitName": "Implement WHS procedures",
          "readCompetencyStandards": {"label": "Have you read the competency standards?"},
          "competencies": [
            {"description": "Identify hazards", "frequency": {}, "explanation": {}},
            {"description": "Report incidents", "frequency": {}}
          ],
          "thirdPartySignature": {"label": "Supervisor Signature"},
          "date": {}
        }
      ]
    }
  ]
}`

// FlatTemplate is a minimal flat-layout template.
const FlatTemplate = `{
  "name": "Quick Survey",
  "formStructure": [
    {"fieldName": "rating", "fieldType": "dropdown", "label": "Rating", "options": ["Good", "Bad"], "required": true},
    {"fieldName": "comments", "fieldType": "textarea", "label": "Comments"}
  ]
}`
