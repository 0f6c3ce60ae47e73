package export

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/testsupport"
	"github.com/goliatone/go-formfill/pkg/validation"
)

func TestNewSnapshot_TimestampShape(t *testing.T) {
	form := testsupport.MustParseForm(t, testsupport.FlatTemplate)
	instant := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	snapshot, err := NewSnapshot(form, answers.Store{}, validation.Report{}, instant)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.ExportTimestamp != "2026-03-14T09:26:53.589Z" {
		t.Fatalf("timestamp: %q", snapshot.ExportTimestamp)
	}
}

func TestNewSnapshot_RequiresForm(t *testing.T) {
	if _, err := NewSnapshot(nil, answers.Store{}, validation.Report{}, time.Now()); err == nil {
		t.Fatal("expected error for nil form")
	}
}

func TestSnapshot_MarshalKeys(t *testing.T) {
	form := testsupport.MustParseForm(t, testsupport.FlatTemplate)
	store := answers.Store{"rating": "Good", "comments": ""}
	report := validation.Validate(form.Fields, store, validation.Options{})

	snapshot, err := NewSnapshot(form, store, report, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	data, err := snapshot.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"formStructure", "formValues", "exportTimestamp", "validation"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, data)
		}
	}

	// The embedded structure is the original template document, byte for
	// byte a JSON-equal copy.
	var structure map[string]any
	if err := json.Unmarshal(decoded["formStructure"], &structure); err != nil {
		t.Fatalf("structure: %v", err)
	}
	if structure["name"] != "Quick Survey" {
		t.Fatalf("structure name: %v", structure["name"])
	}

	var report2 validation.Report
	if err := json.Unmarshal(decoded["validation"], &report2); err != nil {
		t.Fatalf("validation: %v", err)
	}
	if report2.TotalFields != 2 {
		t.Fatalf("validation round trip: %+v", report2)
	}
}

func TestFilename(t *testing.T) {
	instant := time.UnixMilli(1757400000123)
	if got := Filename(instant); got != "form-export-1757400000123.json" {
		t.Fatalf("filename: %q", got)
	}
}
