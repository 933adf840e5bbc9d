// Package sanitize strips markup from user supplied text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict policy removes every tag and keeps the text content
var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace. Entities the
// sanitizer escapes are decoded again so the result is plain text.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
