// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "regexp"

// urlPattern matches plain http(s) URLs. A URL ends at whitespace, closing
// brackets, quotes, angle brackets, or CJK punctuation.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]}<>"'，。：；！、]+`)

// LinkURLs rewrites every plain URL in text as a Markdown link whose label
// is the URL itself.
func LinkURLs(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		return "[" + url + "](" + url + ")"
	})
}
