package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formfill/internal/loader"
	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/expansion"
	"github.com/goliatone/go-formfill/pkg/export"
	"github.com/goliatone/go-formfill/pkg/flatten"
	"github.com/goliatone/go-formfill/pkg/schema"
	"github.com/goliatone/go-formfill/pkg/validation"
)

// ErrNoForm is returned by operations that need a loaded template.
var ErrNoForm = errors.New("session: no form loaded")

// ErrValidationFailed is returned when a submission payload is requested
// while the answer state still has errors.
var ErrValidationFailed = errors.New("session: validation failed")

// Session owns the state of one form-filling interaction: the loaded
// template, its canonical field sequence, the answer store, per-field error
// bookkeeping, and expansion state. A session supports a single logical
// writer; callers serialize edits exactly as one active form does.
type Session struct {
	loader   *loader.Loader
	registry *catalog.Registry
	mode     validation.Mode

	form        *schema.Form
	fields      []schema.Field
	store       answers.Store
	fieldErrors map[string]string
	sections    expansion.State
	units       expansion.State
}

// New constructs a session with the supplied options.
func New(options ...Option) *Session {
	opts := defaultOptions()
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return &Session{
		loader:   loader.New(opts.loader),
		registry: opts.registry,
		mode:     opts.mode,
	}
}

// LoadOptions carries the optional inputs of a template load: a saved
// submission to resume and a profile for identity prefill.
type LoadOptions struct {
	Prior   map[string]any
	Profile *answers.Profile
}

// Load fetches, parses, and installs a template, replacing any previous
// form wholesale: answers are re-initialized, field errors cleared, and
// expansion state reset with sections expanded.
func (s *Session) Load(ctx context.Context, src schema.Source, opts LoadOptions) error {
	raw, err := s.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("session: load template: %w", err)
	}
	form, err := schema.ParseSource(src, raw)
	if err != nil {
		return err
	}
	s.install(form, opts)
	return nil
}

// LoadBytes installs a template from pre-fetched JSON bytes.
func (s *Session) LoadBytes(raw []byte, opts LoadOptions) error {
	form, err := schema.Parse(raw)
	if err != nil {
		return err
	}
	s.install(form, opts)
	return nil
}

func (s *Session) install(form *schema.Form, opts LoadOptions) {
	s.form = form
	s.fields = flatten.Flatten(form)
	s.store = answers.Initialize(s.fields, answers.Options{
		Prior:    opts.Prior,
		Profile:  opts.Profile,
		Registry: s.registry,
	})
	s.fieldErrors = make(map[string]string)
	s.sections = expansion.InitialSections(form)
	s.units = expansion.New()
}

// Form returns the loaded template, or nil.
func (s *Session) Form() *schema.Form {
	return s.form
}

// Fields returns the canonical field sequence of the loaded template.
func (s *Session) Fields() []schema.Field {
	return s.fields
}

// Answers returns the live answer store. Mutations must go through the
// session's write methods so error bookkeeping stays consistent.
func (s *Session) Answers() answers.Store {
	return s.store
}

// SetValue replaces a scalar answer and clears any recorded error for that
// exact field name. The full report is not recomputed; callers decide when
// to re-validate.
func (s *Session) SetValue(name string, value any) {
	s.store.Set(name, value)
	delete(s.fieldErrors, name)
}

// SetBool replaces a boolean answer (bare checkbox or matrix cell).
func (s *Session) SetBool(name string, value bool) {
	s.store.SetBool(name, value)
	delete(s.fieldErrors, name)
}

// ToggleMember toggles a member of a set-valued answer.
func (s *Session) ToggleMember(name, member string) {
	s.store.ToggleMember(name, member)
	delete(s.fieldErrors, name)
}

// FieldError returns the recorded error message for a field, if any.
func (s *Session) FieldError(name string) string {
	return s.fieldErrors[name]
}

// Validate recomputes the full report and refreshes the per-field error
// bookkeeping.
func (s *Session) Validate() validation.Report {
	opts := validation.Options{Mode: s.mode, Registry: s.registry}
	report := validation.Validate(s.fields, s.store, opts)
	s.fieldErrors = validation.FieldErrors(s.fields, s.store, opts)
	return report
}

// Status values accepted by the submission collaborator.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Payload is the save-boundary shape handed to the submission collaborator.
type Payload struct {
	FormData answers.Store `json:"formData"`
	Status   string        `json:"status"`
}

// DraftPayload shapes the current answers for a draft save. Drafts are
// never gated on validation.
func (s *Session) DraftPayload() (Payload, error) {
	if s.form == nil {
		return Payload{}, ErrNoForm
	}
	return Payload{FormData: s.store.Clone(), Status: StatusDraft}, nil
}

// SubmitPayload validates the session and, when clean, shapes the answers
// for final submission. On failure the report is returned alongside
// ErrValidationFailed so callers can surface the errors.
func (s *Session) SubmitPayload() (Payload, validation.Report, error) {
	if s.form == nil {
		return Payload{}, validation.Report{}, ErrNoForm
	}
	report := s.Validate()
	if !report.Valid {
		return Payload{}, report, ErrValidationFailed
	}
	return Payload{FormData: s.store.Clone(), Status: StatusSubmitted}, report, nil
}

// Export captures the session snapshot at the supplied instant, running a
// fresh validation pass for the embedded report.
func (s *Session) Export(now time.Time) (export.Snapshot, error) {
	if s.form == nil {
		return export.Snapshot{}, ErrNoForm
	}
	return export.NewSnapshot(s.form, s.store, s.Validate(), now)
}

// Sections returns the section expansion state.
func (s *Session) Sections() expansion.State {
	return s.sections
}

// Units returns the unit expansion state, keyed by unit code.
func (s *Session) Units() expansion.State {
	return s.units
}

// ToggleSection flips one section's expanded flag.
func (s *Session) ToggleSection(key string) {
	s.sections.Toggle(key)
}

// ToggleUnit flips one unit's expanded flag.
func (s *Session) ToggleUnit(key string) {
	s.units.Toggle(key)
}

// ExpandAllSections expands every section of the loaded template.
func (s *Session) ExpandAllSections() {
	s.sections.ExpandAll(expansion.SectionKeys(s.form))
}

// CollapseAllSections collapses every section of the loaded template.
func (s *Session) CollapseAllSections() {
	s.sections.CollapseAll(expansion.SectionKeys(s.form))
}

// AllSectionsExpanded reports whether every section is expanded.
func (s *Session) AllSectionsExpanded() bool {
	return s.sections.AllExpanded(expansion.SectionKeys(s.form))
}
