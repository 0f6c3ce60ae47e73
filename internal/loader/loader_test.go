package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formfill/pkg/schema"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`{"name":"f"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(Options{})
	got, err := loader.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"name":"f"}` {
		t.Fatalf("bytes: %s", got)
	}
}

func TestLoad_FS(t *testing.T) {
	fsys := fstest.MapFS{"forms/f.json": {Data: []byte(`{}`)}}

	loader := New(Options{FileSystem: fsys})
	got, err := loader.Load(context.Background(), schema.SourceFromFS("forms/f.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{}` {
		t.Fatalf("bytes: %s", got)
	}
}

func TestLoad_FSNotConfigured(t *testing.T) {
	loader := New(Options{})
	if _, err := loader.Load(context.Background(), schema.SourceFromFS("f.json")); err == nil {
		t.Fatal("expected error without a configured filesystem")
	}
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"remote"}`))
	}))
	defer srv.Close()

	loader := New(Options{AllowHTTP: true})
	got, err := loader.Load(context.Background(), schema.SourceFromURL(srv.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"name":"remote"}` {
		t.Fatalf("bytes: %s", got)
	}
}

func TestLoad_HTTPDisabled(t *testing.T) {
	loader := New(Options{})
	if _, err := loader.Load(context.Background(), schema.SourceFromURL("http://example.com/form.json")); err == nil {
		t.Fatal("expected error with http support disabled")
	}
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	loader := New(Options{AllowHTTP: true})
	if _, err := loader.Load(context.Background(), schema.SourceFromURL(srv.URL)); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestLoad_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(Options{FileSystem: fstest.MapFS{}})
	if _, err := loader.Load(ctx, schema.SourceFromFS("f.json")); err == nil {
		t.Fatal("expected context error")
	}
}
