package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formfill/pkg/answers"
	"github.com/goliatone/go-formfill/pkg/fill"
	"github.com/goliatone/go-formfill/pkg/schema"
	"github.com/goliatone/go-formfill/pkg/session"
	"github.com/goliatone/go-formfill/pkg/validation"
)

func main() {
	source := flag.String("source", "", "form template path or URL")
	priorPath := flag.String("answers", "", "saved answers JSON to resume")
	profilePath := flag.String("profile", "", "candidate profile JSON for prefill")
	mode := flag.String("mode", "full", "validation mode: full or relaxed")
	interactive := flag.Bool("fill", false, "prompt for answers interactively")
	output := flag.String("output", "", "export file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	vmode, err := parseMode(*mode)
	if err != nil {
		log.Fatalf("%v", err)
	}

	sess := session.New(
		session.WithMode(vmode),
		session.WithHTTPFallback(30*time.Second),
	)

	opts := session.LoadOptions{}
	if *priorPath != "" {
		prior, err := readJSONMap(*priorPath)
		if err != nil {
			log.Fatalf("Failed to read answers: %v", err)
		}
		opts.Prior = prior
	}
	if *profilePath != "" {
		profile, err := readProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to read profile: %v", err)
		}
		opts.Profile = profile
	}

	if err := sess.Load(ctx, src, opts); err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	if *interactive {
		filler := fill.New()
		if err := filler.Run(ctx, sess.Fields(), sess.Answers()); err != nil {
			log.Fatalf("Fill aborted: %v", err)
		}
	}

	report := sess.Validate()
	for _, msg := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
	if !report.Valid {
		for _, msg := range report.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
	}
	fmt.Fprintf(os.Stderr, "%d/%d required fields filled\n",
		report.FilledRequiredFields, report.RequiredFields)

	snapshot, err := sess.Export(time.Now())
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
	data, err := snapshot.Marshal()
	if err != nil {
		log.Fatalf("Failed to encode export: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Export written to %s\n", *output)
	} else {
		fmt.Println(string(data))
	}

	if !report.Valid {
		os.Exit(1)
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func parseMode(raw string) (validation.Mode, error) {
	switch raw {
	case "full":
		return validation.ModeFull, nil
	case "relaxed":
		return validation.ModeRelaxed, nil
	default:
		return validation.ModeFull, fmt.Errorf("unknown mode: %q", raw)
	}
}

func readJSONMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func readProfile(path string) (*answers.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profile := &answers.Profile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
