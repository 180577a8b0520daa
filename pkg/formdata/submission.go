package formdata

import "strings"

// FieldResult is one answered form field.
type FieldResult struct {
	Label string `json:"label"`
	Value Value  `json:"value"`
}

// Values holds a submission's answers keyed by field key, in form order.
type Values = OrderedMap[FieldResult]

// Submission is a stored form submission.
type Submission struct {
	FormValues    Values `json:"formValues"`
	ClientName    string `json:"clientName,omitempty"`
	ClientEmail   string `json:"clientEmail,omitempty"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientCompany string `json:"clientCompany,omitempty"`
	FormName      string `json:"formName,omitempty"`
}

// ProjectContext carries project-level values used as template fallbacks.
type ProjectContext struct {
	Name string `json:"name"`
}

// NormalizeKey turns a field label into a variable name: the label is
// lowercased and every rune outside [a-z0-9] becomes '_'.
//
//	NormalizeKey("Budget (USD)") == "budget__usd_"
func NormalizeKey(label string) string {
	lower := strings.ToLower(label)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
