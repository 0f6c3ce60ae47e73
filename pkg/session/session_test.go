package session

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/schema"
	"github.com/goliatone/go-formfill/pkg/testsupport"
	"github.com/goliatone/go-formfill/pkg/validation"
)

func TestSession_LoadBytes(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.SectionedTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	if sess.Form() == nil || sess.Form().Name != "Induction Checklist" {
		t.Fatalf("form not installed: %+v", sess.Form())
	}
	if len(sess.Fields()) == 0 {
		t.Fatal("fields not flattened")
	}
	if sess.Answers() == nil {
		t.Fatal("store not initialized")
	}
	if !sess.AllSectionsExpanded() {
		t.Fatal("fresh load should expand all sections")
	}
}

func TestSession_LoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/survey.json": {Data: []byte(testsupport.FlatTemplate)},
	}
	sess := New(WithFileSystem(fsys))

	err := sess.Load(testsupport.Context(), schema.SourceFromFS("forms/survey.json"), LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Form().Name != "Quick Survey" {
		t.Fatalf("form name: %q", sess.Form().Name)
	}
}

func TestSession_LoadReplacesState(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.SectionedTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetValue("firstName", "Ada")
	sess.CollapseAllSections()

	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := sess.Answers().String("firstName"); got != "" {
		t.Fatalf("answers leaked across loads: %q", got)
	}
}

func TestSession_PriorAndProfile(t *testing.T) {
	sess := New()
	err := sess.LoadBytes([]byte(testsupport.SectionedTemplate), LoadOptions{
		Prior:   map[string]any{"notes": "carried over"},
		Profile: &answers.Profile{FirstName: "Ada"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := sess.Answers().String("notes"); got != "carried over" {
		t.Fatalf("prior answer: %q", got)
	}
	if got := sess.Answers().String("firstName"); got != "Ada" {
		t.Fatalf("profile prefill: %q", got)
	}
}

func TestSession_ValidateAndFieldErrors(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	report := sess.Validate()
	if report.Valid {
		t.Fatalf("unfilled required field should invalidate: %+v", report)
	}
	if sess.FieldError("rating") == "" {
		t.Fatal("rating should carry a field error")
	}

	// Writing the field clears its recorded error without a fresh pass.
	sess.SetValue("rating", "Good")
	if sess.FieldError("rating") != "" {
		t.Fatalf("edit should clear field error: %q", sess.FieldError("rating"))
	}

	if report := sess.Validate(); !report.Valid {
		t.Fatalf("filled form should be valid: %+v", report)
	}
}

func TestSession_DraftPayload(t *testing.T) {
	sess := New()
	if _, err := sess.DraftPayload(); !errors.Is(err, ErrNoForm) {
		t.Fatalf("draft without form: %v", err)
	}

	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Drafts are never gated on validation.
	payload, err := sess.DraftPayload()
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if payload.Status != StatusDraft {
		t.Fatalf("status: %q", payload.Status)
	}

	// The payload is a copy, not a live view.
	payload.FormData.Set("rating", "Bad")
	if sess.Answers().String("rating") == "Bad" {
		t.Fatal("draft payload aliases session store")
	}
}

func TestSession_SubmitPayload(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, report, err := sess.SubmitPayload()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("invalid submit error: %v", err)
	}
	if report.Valid {
		t.Fatalf("report should carry the failure: %+v", report)
	}

	sess.SetValue("rating", "Good")
	payload, report, err := sess.SubmitPayload()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !report.Valid || payload.Status != StatusSubmitted {
		t.Fatalf("submit outcome: %+v / %+v", report, payload)
	}
}

func TestSession_Export(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetValue("rating", "Good")

	snapshot, err := sess.Export(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snapshot.FormStructure != sess.Form() {
		t.Fatal("snapshot should embed the loaded form")
	}
	if snapshot.FormValues.String("rating") != "Good" {
		t.Fatalf("snapshot values: %+v", snapshot.FormValues)
	}
	if !snapshot.Validation.Valid {
		t.Fatalf("snapshot validation: %+v", snapshot.Validation)
	}
}

func TestSession_ExpansionControls(t *testing.T) {
	sess := New()
	if err := sess.LoadBytes([]byte(testsupport.SectionedTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	sess.ToggleSection("personal")
	if sess.AllSectionsExpanded() {
		t.Fatal("collapsed section should break AllSectionsExpanded")
	}
	sess.ExpandAllSections()
	if !sess.AllSectionsExpanded() {
		t.Fatal("expand all should restore")
	}

	if sess.Units().Expanded("BSBWHS411") {
		t.Fatal("units start collapsed")
	}
	sess.ToggleUnit("BSBWHS411")
	if !sess.Units().Expanded("BSBWHS411") {
		t.Fatal("unit toggle")
	}
}

func TestSession_RelaxedMode(t *testing.T) {
	sess := New(WithMode(validation.ModeRelaxed))
	if err := sess.LoadBytes([]byte(testsupport.FlatTemplate), LoadOptions{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	if report := sess.Validate(); !report.Valid {
		t.Fatalf("relaxed mode should tolerate unfilled required fields: %+v", report)
	}
}
