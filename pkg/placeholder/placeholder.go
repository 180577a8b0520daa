package placeholder

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/deliverkit/pkg/formdata"
)

// VariableMap maps normalized variable names to values, in insertion order.
type VariableMap = formdata.OrderedMap[formdata.Value]

// pattern matches {{name}} where name is [a-z0-9_]+, case-insensitive.
var pattern = regexp.MustCompile(`(?i)\{\{([a-z0-9_]+)\}\}`)

// Replace substitutes every {{name}} in tmpl with the display text of the
// matching variable. Names are looked up lowercased. Unknown placeholders are
// left verbatim. Substituted text is never scanned again.
//
// Example:
//
//	vars.Set("name", formdata.String("John"))
//	Replace("Hello, {{Name}}! {{unknown}}", vars)
//	// "Hello, John! {{unknown}}"
func Replace(tmpl string, vars *VariableMap) string {
	return replace(tmpl, vars, nil)
}

func replace(tmpl string, vars *VariableMap, escape func(string) string) string {
	if tmpl == "" || vars.Len() == 0 {
		return tmpl
	}
	return pattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := strings.ToLower(match[2 : len(match)-2])
		v, ok := vars.Get(name)
		if !ok {
			return match
		}
		s := v.String()
		if escape != nil {
			s = escape(s)
		}
		return s
	})
}

// Placeholders returns the distinct lowercased placeholder names in tmpl,
// in order of first appearance.
func Placeholders(tmpl string) []string {
	matches := pattern.FindAllStringSubmatch(tmpl, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Unresolved returns the placeholder names in tmpl that vars cannot resolve.
func Unresolved(tmpl string, vars *VariableMap) []string {
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if !vars.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
