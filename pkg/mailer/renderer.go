package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/deliverkit/pkg/logger"
	"github.com/dmitrymomot/deliverkit/pkg/placeholder"
	"github.com/dmitrymomot/deliverkit/pkg/sanitizer"
)

// Renderer turns markdown templates with {{variable}} placeholders into
// HTML and plain-text email bodies.
//
// Templates and layouts are read from an fs.FS and cached after the first
// use. Inline templates passed to RenderString are parsed on every call.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	html        *placeholder.Renderer // escapes values for markdown
	text        *placeholder.Renderer
	templateDir string
	layoutDir   string

	mu        sync.RWMutex
	templates map[string]*Template
	layouts   map[string]*template.Template
}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
	Logger      *slog.Logger
}

// NewRenderer creates a Renderer with default directories.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a Renderer. filesystem may be nil when only
// inline templates without a layout are rendered.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNope()
	}

	text := placeholder.New(placeholder.WithLogger(cfg.Logger))
	return &Renderer{
		fs:          filesystem,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, NewButtonExtension()),
		),
		text:      text,
		html:      text.With(placeholder.WithEscaper(EscapeMarkdown)),
		templates: make(map[string]*Template),
		layouts:   make(map[string]*template.Template),
	}
}

// RenderResult is a rendered email body.
type RenderResult struct {
	Metadata map[string]any
	Subject  string // frontmatter subject, placeholders resolved
	HTML     string
	Text     string
}

// Render renders the named template inside layout. An empty layout returns
// the bare HTML fragment.
func (r *Renderer) Render(layout, name string, vars *placeholder.VariableMap) (*RenderResult, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}
	return r.render(layout, tmpl, vars)
}

// RenderString renders an inline template, which may carry frontmatter.
func (r *Renderer) RenderString(layout, source string, vars *placeholder.VariableMap) (*RenderResult, error) {
	tmpl, err := ParseTemplate([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return r.render(layout, tmpl, vars)
}

func (r *Renderer) render(layout string, tmpl *Template, vars *placeholder.VariableMap) (*RenderResult, error) {
	var fragment bytes.Buffer
	if err := r.md.Convert([]byte(r.html.RenderVars(tmpl.Body, vars)), &fragment); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}
	content := sanitizer.SanitizeEmailHTML(fragment.String())

	res := &RenderResult{
		Metadata: tmpl.Metadata,
		Subject:  r.text.RenderVars(tmpl.Subject(), vars),
		Text:     r.text.RenderVars(tmpl.Body, vars),
		HTML:     content,
	}
	if layout == "" {
		return res, nil
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = lt.Execute(&out, map[string]any{
		"Content":   template.HTML(content),
		"Subject":   res.Subject,
		"Metadata":  tmpl.Metadata,
		"Variables": variableStrings(vars),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}
	res.HTML = out.String()
	return res, nil
}

func (r *Renderer) template(name string) (*Template, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	content, err := r.read(path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	t, err = ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.templates[name]; ok {
		return cached, nil
	}
	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	content, err := r.read(path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	lt, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.layouts[name]; ok {
		return cached, nil
	}
	r.layouts[name] = lt
	return lt, nil
}

func (r *Renderer) read(name string) ([]byte, error) {
	if r.fs == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(r.fs, name)
}

func variableStrings(vars *placeholder.VariableMap) map[string]string {
	out := make(map[string]string, vars.Len())
	for k, v := range vars.All() {
		out[k] = v.String()
	}
	return out
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`, `#`, `\#`, `+`, `\+`,
	`-`, `\-`, `.`, `\.`, `!`, `\!`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
	`~`, `\~`, `&`, `\&`,
)

// EscapeMarkdown backslash-escapes markdown and HTML punctuation so that a
// substituted value renders as literal text.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
