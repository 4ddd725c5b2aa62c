package carbon

import (
	"regexp"
	"strings"
)

var (
	// OCR engines in the tesseract family interleave job metadata with the
	// recognized text; everything from a diagnostic token to end of line is
	// noise.
	diagnosticPattern = regexp.MustCompile(`(?i)(workerId|jobId|status|progress|userJobId).*`)

	// Allow list: letters, digits and the punctuation that carries meaning
	// on a receipt (currency, separators, percent, signs).
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z0-9.,:;()₹$%+\- ]`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText canonicalizes raw OCR output. Passes run in order: diagnostic
// lines are stripped before the allow-list runs, and whitespace is collapsed
// last. CleanText(CleanText(x)) == CleanText(x) for any x.
func CleanText(raw string) string {
	text := diagnosticPattern.ReplaceAllString(raw, "")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// sanitizeFileStem collapses whitespace to underscores and strips everything
// from the first dot, mirroring how upload filenames become display names.
func sanitizeFileStem(filename string) string {
	stem := whitespacePattern.ReplaceAllString(filename, "_")
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	return stem
}
