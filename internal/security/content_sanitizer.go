package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// SanitizerService cleans HTML that leaves the service: project long
// descriptions served to the SPA and the HTML body composed for
// contact-form mail. Allow-list based; everything not listed is
// stripped.
type SanitizerService interface {
	// Sanitize returns a safe version of rawHTML. Idempotent; empty
	// input yields empty output.
	Sanitize(rawHTML string) string
}

// Sanitizer implements SanitizerService on a bluemonday policy.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the shared sanitizer policy:
//   - allowed tags: p, br, ul, ol, li, blockquote, pre, code, strong, em, a
//   - a tags keep href only, get target="_blank" and
//     rel="noopener noreferrer", and may not use relative URLs
//   - script, iframe, style and all on* attributes are stripped
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize applies the policy. Safe for concurrent use.
func (s *Sanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
