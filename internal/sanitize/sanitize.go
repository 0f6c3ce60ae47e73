// Package sanitize strips markup from schema-supplied display strings.
// Form templates arrive from arbitrary byte sources, so every label,
// description, and info text is treated as untrusted before it reaches a
// consumer.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text removes any HTML from a schema-supplied string and collapses the
// result to trimmed plain text. Entities introduced by the sanitizer are
// decoded so consumers see the literal characters the author wrote.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := plainTextPolicy().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func plainTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
