// Package sanitizer cleans user-supplied text before it reaches rendered
// emails and documents.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)

		// Everything goldmark emits for email bodies, plus the button class.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
		emailPolicy.RequireNoFollowOnLinks(false)
	})
}

// StripHTML removes every tag and returns escaped plain text.
// Use it for form answers substituted into email templates.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML allows basic formatting (p, a, strong, em, lists, code).
// Scripts, event handlers and javascript: URLs are removed.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeEmailHTML keeps the markup produced by markdown email templates
// (headings, lists, tables, links, button links) and drops anything active.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
