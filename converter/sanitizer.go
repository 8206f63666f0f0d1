package converter

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips scripts, event handlers and unsafe URLs from article HTML
// while keeping the wrappers the converters emit. Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)).OnElements("div", "p", "span")
	policy.AllowAttrs("data-page").Matching(regexp.MustCompile(`^[0-9]+$`)).OnElements("div")
	return &Sanitizer{policy: policy}
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
