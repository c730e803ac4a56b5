package invoice

import (
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Filename returns the output filename for the rendered PDF, e.g.
// "INV1001_Matt_Holker.pdf". The payer name is sanitized for the
// filesystem: unsafe characters are stripped and whitespace runs become
// single underscores.
func (inv *Invoice) Filename() string {
	return inv.Number + "_" + SanitizeName(inv.Client.PayerName()) + ".pdf"
}

// SanitizeName converts a client or company name into a
// filesystem-safe fragment.
func SanitizeName(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "")
	safe = whitespace.ReplaceAllString(strings.TrimSpace(safe), "_")
	return safe
}
