package templates

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z][a-zA-Z0-9_]*)\s*\}\}`)

// RenderBody substitutes {{placeholder}} tokens in a template body with
// values from data. Unknown placeholders render as empty strings so a
// guest never sees raw template syntax in an SMS.
func RenderBody(body string, data map[string]string) string {
	rendered := placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return data[key]
	})
	return strings.TrimSpace(rendered)
}

// Placeholders returns the distinct placeholder names used in a body,
// in order of first appearance.
func Placeholders(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}
