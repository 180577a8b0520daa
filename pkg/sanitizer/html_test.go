package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/deliverkit/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips script injection", `<p>Hello</p><script>alert('xss')</script>`, "Hello"},
		{"strips all tags", `<p>Hello <strong>world</strong></p>`, "Hello world"},
		{"strips event handlers", `<img src="x" onerror="alert('xss')">`, ""},
		{"keeps link text", `<a href="javascript:alert('xss')">click</a>`, "click"},
		{"plain text untouched", "Acme Corp, invoice 42", "Acme Corp, invoice 42"},
		{"escapes ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<p>Hi <em>there</em></p><script>x()</script><a href="https://example.com" onclick="x()">go</a>`)
	assert.Contains(t, out, "<p>Hi <em>there</em></p>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `rel="nofollow"`)
}

func TestSanitizeEmailHTML(t *testing.T) {
	t.Parallel()

	in := `<h1>Invoice</h1><p>Total <strong>$10</strong></p>` +
		`<a href="https://pay.example.com" class="btn">Pay now</a>` +
		`<img src="x" onerror="alert(1)"><script>alert(1)</script>`

	out := sanitizer.SanitizeEmailHTML(in)
	assert.Contains(t, out, "<h1>Invoice</h1>")
	assert.Contains(t, out, "<strong>$10</strong>")
	assert.Contains(t, out, `class="btn"`)
	assert.Contains(t, out, `href="https://pay.example.com"`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("custom policy", func(t *testing.T) {
		t.Parallel()
		p := bluemonday.NewPolicy()
		p.AllowElements("b")
		assert.Equal(t, "<b>x</b>y", sanitizer.SanitizeHTMLCustom("<b>x</b><i>y</i>", p))
	})

	t.Run("nil policy returns input unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<i>y</i>", sanitizer.SanitizeHTMLCustom("<i>y</i>", nil))
	})
}
