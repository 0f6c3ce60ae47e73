package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a form template originated so loaders can operate
// on files, fs.FS entries, or URLs without the core caring about transport.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing at an on-disk template.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a template inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It
// panics on an invalid URL to surface configuration mistakes early; template
// content fetched from the URL is still treated as untrusted.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// ParseSource decodes template bytes according to the source location,
// treating .yaml/.yml locations as YAML and everything else as JSON.
func ParseSource(src Source, raw []byte) (*Form, error) {
	if src != nil && isYAMLLocation(src.Location()) {
		return ParseYAML(raw)
	}
	return Parse(raw)
}

func isYAMLLocation(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
