package render

import (
	"strings"
	"time"
	"unicode"
)

const timestampLayout = "20060102_150405"

// deriveFilename returns the output filename for a document. An explicit
// name is kept, gaining the extension if it is missing; otherwise the name
// is built from the sanitized title plus a timestamp.
func deriveFilename(title, explicit, ext string, now time.Time) string {
	suffix := "." + ext
	if explicit != "" {
		if !strings.HasSuffix(explicit, suffix) {
			explicit += suffix
		}
		return explicit
	}
	return sanitizeTitle(title) + "_" + now.Format(timestampLayout) + suffix
}

// sanitizeTitle keeps alphanumerics, spaces, dashes and underscores, trims
// the result, and turns spaces into underscores.
func sanitizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
}
