package fill

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// Filler walks a flattened field list and collects answers through a
// PromptDriver, writing results into an answer store.
type Filler struct {
	driver   PromptDriver
	registry *catalog.Registry
	pageSize int
}

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the default survey-backed prompt driver.
func WithDriver(d PromptDriver) Option {
	return func(f *Filler) {
		if d != nil {
			f.driver = d
		}
	}
}

// WithRegistry overrides the field type registry.
func WithRegistry(r *catalog.Registry) Option {
	return func(f *Filler) {
		if r != nil {
			f.registry = r
		}
	}
}

// WithPageSize sets the page size for select prompts.
func WithPageSize(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// New returns a Filler with the given options applied.
func New(options ...Option) *Filler {
	f := &Filler{
		driver:   NewSurveyDriver(),
		registry: catalog.Default(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Run prompts for every field in order and records answers into store.
// Informational fields are printed, unsupported types are announced and
// skipped. Existing store values seed prompt defaults so a partially
// filled form resumes where it left off.
func (f *Filler) Run(ctx context.Context, fields []schema.Field, store answers.Store) error {
	for i := range fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.fillField(ctx, &fields[i], store); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) fillField(ctx context.Context, field *schema.Field, store answers.Store) error {
	entry, _ := f.registry.Resolve(field.Type)

	if entry.Unsupported {
		return f.driver.Info(ctx, fmt.Sprintf("Unsupported field type: %s", field.Type))
	}
	if entry.Informational() {
		text := field.Label
		if text == "" {
			text = field.Text
		}
		if text == "" {
			return nil
		}
		return f.driver.Info(ctx, text)
	}
	if entry.Composite() {
		return f.fillComposite(ctx, field, entry, store)
	}

	switch entry.Value {
	case catalog.ValueBool:
		current := store.Bool(field.Name)
		got, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fieldMessage(field),
			Default: current,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		store.SetBool(field.Name, got)
		return nil

	case catalog.ValueSet:
		options := field.ChoiceOptions()
		if len(options) == 0 {
			// A bare checkbox collects a boolean, not a member set.
			got, err := f.driver.Confirm(ctx, ConfirmConfig{
				Message: fieldMessage(field),
				Default: store.Bool(field.Name),
				Help:    field.Description,
			})
			if err != nil {
				return err
			}
			store.SetBool(field.Name, got)
			return nil
		}
		got, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  fieldMessage(field),
			Options:  options,
			Defaults: store.Members(field.Name),
			Help:     field.Description,
			PageSize: f.pageSize,
		})
		if err != nil {
			return err
		}
		store.Set(field.Name, got)
		return nil

	case catalog.ValueString:
		if options := field.ChoiceOptions(); len(options) > 0 {
			got, err := f.driver.Select(ctx, SelectConfig{
				Message:  fieldMessage(field),
				Options:  options,
				Default:  store.String(field.Name),
				Help:     field.Description,
				PageSize: f.pageSize,
			})
			if err != nil {
				return err
			}
			store.Set(field.Name, got)
			return nil
		}
		cfg := InputConfig{
			Message: fieldMessage(field),
			Default: store.String(field.Name),
			Help:    field.Description,
		}
		var (
			got string
			err error
		)
		if entry.Type == catalog.TypeTextarea {
			got, err = f.driver.TextArea(ctx, cfg)
		} else {
			got, err = f.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		store.Set(field.Name, got)
		return nil
	}
	return nil
}

// fillComposite prompts per answer unit so matrices and tables are
// collected one cell at a time.
func (f *Filler) fillComposite(ctx context.Context, field *schema.Field, entry catalog.Entry, store answers.Store) error {
	if msg := fieldMessage(field); msg != "" {
		if err := f.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	for _, unit := range entry.Expand(*field) {
		switch unit.Kind {
		case catalog.ValueBool:
			got, err := f.driver.Confirm(ctx, ConfirmConfig{
				Message: unit.Label,
				Default: store.Bool(unit.Key),
			})
			if err != nil {
				return err
			}
			store.SetBool(unit.Key, got)
		case catalog.ValueString:
			if len(unit.Options) > 0 {
				got, err := f.driver.Select(ctx, SelectConfig{
					Message:  unit.Label,
					Options:  unit.Options,
					Default:  store.String(unit.Key),
					PageSize: f.pageSize,
				})
				if err != nil {
					return err
				}
				store.Set(unit.Key, got)
				continue
			}
			got, err := f.driver.Input(ctx, InputConfig{
				Message: unit.Label,
				Default: store.String(unit.Key),
			})
			if err != nil {
				return err
			}
			store.Set(unit.Key, got)
		}
	}
	return nil
}

func fieldMessage(field *schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	if field.Text != "" {
		return field.Text
	}
	return field.Name
}
