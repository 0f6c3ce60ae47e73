// Package export shapes the caller-facing snapshot of a form session. The
// JSON key layout is a compatibility contract with existing consumers and
// must not change.
package export

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/schema"
	"github.com/goliatone/go-formfill/pkg/validation"
)

// Snapshot bundles the loaded template, current answers, and the validation
// report taken at export time.
type Snapshot struct {
	FormStructure   *schema.Form      `json:"formStructure"`
	FormValues      answers.Store     `json:"formValues"`
	ExportTimestamp string            `json:"exportTimestamp"`
	Validation      validation.Report `json:"validation"`
}

// NewSnapshot captures the session state at the supplied instant. The
// timestamp is rendered in UTC with millisecond precision, matching the
// ISO-8601 shape consumers already parse.
func NewSnapshot(form *schema.Form, store answers.Store, report validation.Report, now time.Time) (Snapshot, error) {
	if form == nil {
		return Snapshot{}, errors.New("export: no form loaded")
	}
	return Snapshot{
		FormStructure:   form,
		FormValues:      store,
		ExportTimestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Validation:      report,
	}, nil
}

// Marshal renders the snapshot as indented JSON, the shape written to
// export files.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal snapshot: %w", err)
	}
	return data, nil
}

// Filename returns the conventional export file name for the supplied
// instant: form-export-<unix-millis>.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("form-export-%d.json", now.UnixMilli())
}
