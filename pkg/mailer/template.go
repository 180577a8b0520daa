package mailer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// Template is a markdown email body with its YAML frontmatter.
type Template struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the "subject" frontmatter key. An exact match wins;
// otherwise keys are matched case-insensitively in sorted order.
func (t *Template) Subject() string {
	if s, ok := t.Metadata["subject"].(string); ok {
		return s
	}
	for _, k := range slices.Sorted(maps.Keys(t.Metadata)) {
		if s, ok := t.Metadata[k].(string); ok && strings.EqualFold(k, "subject") {
			return s
		}
	}
	return ""
}

// ParseTemplate splits content into frontmatter and body. Content without a
// leading "---" is all body.
//
//	---
//	subject: Invoice for {{project_name}}
//	---
//	Hi {{client_name}}, ...
func ParseTemplate(content []byte) (*Template, error) {
	rest, ok := bytes.CutPrefix(content, delimiter)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest = bytes.TrimLeft(rest, "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	front, body, found := bytes.Cut(rest, delimiter)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}
	if b, ok := bytes.CutPrefix(body, []byte("\r\n")); ok {
		body = b
	} else {
		body = bytes.TrimPrefix(body, []byte("\n"))
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
