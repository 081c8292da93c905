// internal/app/system/htmlsanitize/htmlsanitize.go
// Package htmlsanitize cleans user-supplied text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag; its output is entity-escaped text.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and returns the remaining text,
// unescaped and trimmed. Chat messages and request notes go through this.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
