package placeholder

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/deliverkit/pkg/formdata"
	"github.com/dmitrymomot/deliverkit/pkg/i18n"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
)

// Built-in variable names, set before any form field.
const (
	VarClientName     = "client_name"
	VarClientEmail    = "client_email"
	VarClientPhone    = "client_phone"
	VarClientCompany  = "client_company"
	VarProjectName    = "project_name"
	VarSubmissionDate = "submission_date"
	VarFormName       = "form_name"
)

// Default fallbacks for missing client and project names.
const (
	DefaultClientName  = "Client"
	DefaultProjectName = "New Project"
)

// Renderer resolves {{variable}} placeholders against submission data.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	logger      *slog.Logger
	now         func() time.Time
	locale      *i18n.LocaleFormat
	escape      func(string) string
	clientName  string
	projectName string
}

// New creates a Renderer. Defaults: no-op logger, time.Now, en-US dates,
// values inserted unescaped.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger:      logger.NewNope(),
		now:         time.Now,
		locale:      i18n.FormatEnUS(),
		clientName:  DefaultClientName,
		projectName: DefaultProjectName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// With returns a copy of r with opts applied on top of its configuration.
func (r *Renderer) With(opts ...Option) *Renderer {
	cp := *r
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Variables builds the variable map for a submission. project may be nil.
//
// Built-ins come first; form fields with a label and a defined value follow in
// form order under their normalized label, overwriting earlier entries.
func (r *Renderer) Variables(sub formdata.Submission, project *formdata.ProjectContext) *VariableMap {
	vars := formdata.NewOrderedMap[formdata.Value](7 + sub.FormValues.Len())

	vars.Set(VarClientName, formdata.String(orDefault(sub.ClientName, r.clientName)))
	vars.Set(VarClientEmail, formdata.String(sub.ClientEmail))
	vars.Set(VarClientPhone, formdata.String(sub.ClientPhone))
	vars.Set(VarClientCompany, formdata.String(sub.ClientCompany))

	projectName := r.projectName
	if project != nil && project.Name != "" {
		projectName = project.Name
	}
	vars.Set(VarProjectName, formdata.String(projectName))
	vars.Set(VarSubmissionDate, formdata.String(r.locale.FormatDate(r.now())))
	vars.Set(VarFormName, formdata.String(sub.FormName))

	for fieldKey, field := range sub.FormValues.All() {
		if field.Label == "" || !field.Value.IsDefined() {
			continue
		}
		key := formdata.NormalizeKey(field.Label)
		if vars.Has(key) {
			r.logger.Debug("form field overrides template variable",
				slog.String("variable", key),
				slog.String("field", fieldKey),
			)
		}
		vars.Set(key, field.Value)
	}

	return vars
}

// Render substitutes placeholders in tmpl using the submission's variables.
// An empty template yields an empty string. Render never fails: unresolved
// placeholders stay in the output and are reported at debug level.
func (r *Renderer) Render(tmpl string, sub formdata.Submission, project *formdata.ProjectContext) string {
	if tmpl == "" {
		return ""
	}
	return r.RenderVars(tmpl, r.Variables(sub, project))
}

// RenderVars substitutes placeholders in tmpl using a prepared variable map.
func (r *Renderer) RenderVars(tmpl string, vars *VariableMap) string {
	if tmpl == "" {
		return ""
	}
	if missing := Unresolved(tmpl, vars); len(missing) > 0 {
		r.logger.Debug("template has unresolved placeholders",
			slog.Any("placeholders", missing),
		)
	}
	return replace(tmpl, vars, r.escape)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
