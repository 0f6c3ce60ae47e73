package session

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formfill/internal/loader"
	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/validation"
)

type options struct {
	loader   loader.Options
	registry *catalog.Registry
	mode     validation.Mode
}

func defaultOptions() options {
	return options{
		registry: catalog.Default(),
		mode:     validation.ModeFull,
	}
}

// Option configures a session at construction time.
type Option func(*options)

// WithRegistry overrides the field-type registry.
func WithRegistry(registry *catalog.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithMode selects the validation mode applied by Validate and
// SubmitPayload. The default is full validation; relaxed mode keeps format
// checks but skips required-field completeness.
func WithMode(mode validation.Mode) Option {
	return func(o *options) {
		if mode != "" {
			o.mode = mode
		}
	}
}

// WithFileSystem backs fs.FS template sources.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *options) {
		o.loader.FileSystem = fsys
	}
}

// WithHTTPClient enables URL template sources using the supplied client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.loader.HTTPClient = client
		o.loader.AllowHTTP = client != nil
	}
}

// WithHTTPFallback enables URL template sources with a default client.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(o *options) {
		o.loader.AllowHTTP = true
		o.loader.RequestTimeout = timeout
	}
}
