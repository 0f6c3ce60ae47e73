// Package loader fetches raw form-template bytes from files, fs.FS
// entries, or HTTP endpoints. The core never performs I/O itself; sessions
// delegate here before parsing.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formfill/pkg/schema"
)

// Options configures a Loader.
type Options struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS
	// HTTPClient backs SourceKindURL sources. When nil and AllowHTTP is
	// set, a default client with RequestTimeout is used.
	HTTPClient *http.Client
	// AllowHTTP opts in to fetching templates over the network.
	AllowHTTP bool
	// RequestTimeout bounds each HTTP fetch.
	RequestTimeout time.Duration
}

// Loader resolves template sources to raw bytes.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    client,
		timeout: options.RequestTimeout,
	}
}

// Load fetches the raw template bytes for the supplied source.
func (l *Loader) Load(ctx context.Context, src schema.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	switch src.Kind() {
	case schema.SourceKindFile:
		return loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return nil, errors.New("loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, errors.New("loader: unsupported source kind")
	}
}
