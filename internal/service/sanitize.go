package service

import "github.com/microcosm-cc/bluemonday"

var (
	// contentPolicy keeps the user-generated-content subset of HTML.
	contentPolicy = bluemonday.UGCPolicy()
	// strictPolicy removes every element and attribute.
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML keeps safe markup in article bodies and comments.
func SanitizeHTML(input string) string {
	return contentPolicy.Sanitize(input)
}

// StripHTML removes all markup, leaving text only.
func StripHTML(input string) string {
	return strictPolicy.Sanitize(input)
}
