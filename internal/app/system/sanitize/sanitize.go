// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Mobile clients submit free text for journal bodies, event descriptions,
// and application messages. Strip any markup before it is stored so that
// whatever renders it later cannot be scripted.
var strict = bluemonday.StrictPolicy()

// Text removes all HTML from user-authored text and trims whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
