// Package markup converts the small markdown dialect used in the site data
// files into HTML fragments.
//
// Only two constructs are recognised: [label](url) links and **bold** runs.
// Input is trusted and is never escaped.
package markup

import (
	"regexp"
	"strings"
)

var (
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

const (
	linkTemplate = `<a href="${2}" target="_blank" rel="noopener noreferrer" class="bio-link">${1}</a>`
	boldTemplate = `<strong>${1}</strong>`
)

// Transform applies the link rule and then the bold rule to text.
// Anything that does not match either rule passes through unchanged.
func Transform(text string) string {
	if text == "" {
		return ""
	}
	out := linkPattern.ReplaceAllString(text, linkTemplate)
	return boldPattern.ReplaceAllString(out, boldTemplate)
}

// Lines turns newlines into explicit <br> breaks.
func Lines(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Emphasize wraps every whole-word, case-sensitive occurrence of name in a
// <strong> element. An empty name leaves text untouched.
func Emphasize(text, name string) string {
	if name == "" || text == "" {
		return text
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.ReplaceAllString(text, "<strong>"+strings.ReplaceAll(name, "$", "$$")+"</strong>")
}
