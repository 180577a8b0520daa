package handlers

import (
	"net/http"

	"github.com/dmitrymomot/deliverkit"
	"github.com/dmitrymomot/deliverkit/middlewares"
	"github.com/dmitrymomot/deliverkit/pkg/formdata"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/placeholder"
)

// RenderHandler renders templates against a submission without sending
// anything. Used by editors to preview messages.
type RenderHandler struct {
	renderer *placeholder.Renderer
	emails   *mailer.Renderer
	layout   string
}

// NewRenderHandler creates a RenderHandler. emails may be nil, which disables
// the /render/email preview.
func NewRenderHandler(renderer *placeholder.Renderer, emails *mailer.Renderer, layout string) *RenderHandler {
	return &RenderHandler{renderer: renderer, emails: emails, layout: layout}
}

// Routes implements deliverkit.Handler.
func (h *RenderHandler) Routes(r deliverkit.Router) {
	r.POST("/render", h.render)
	if h.emails != nil {
		r.POST("/render/email", h.renderEmail)
	}
}

type renderRequest struct {
	Template   string                   `json:"template"`
	Submission formdata.Submission      `json:"submission"`
	Project    *formdata.ProjectContext `json:"project,omitempty"`
}

type renderResponse struct {
	Text       string   `json:"text"`
	Unresolved []string `json:"unresolved"`
}

type emailPreviewResponse struct {
	Subject    string   `json:"subject"`
	HTML       string   `json:"html"`
	Text       string   `json:"text"`
	Unresolved []string `json:"unresolved"`
}

func (h *RenderHandler) variables(c deliverkit.Context, req *renderRequest) (*placeholder.VariableMap, *placeholder.Renderer) {
	r := h.renderer
	if lf := middlewares.GetLocale(c); lf != nil {
		r = r.With(placeholder.WithLocaleFormat(lf))
	}
	return r.Variables(req.Submission, req.Project), r
}

func (h *RenderHandler) render(c deliverkit.Context) error {
	var req renderRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	vars, r := h.variables(c, &req)
	return c.JSON(http.StatusOK, renderResponse{
		Text:       r.RenderVars(req.Template, vars),
		Unresolved: nonNil(placeholder.Unresolved(req.Template, vars)),
	})
}

func (h *RenderHandler) renderEmail(c deliverkit.Context) error {
	var req renderRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if req.Template == "" {
		return deliverkit.NewHTTPError(http.StatusBadRequest, "template is required")
	}

	vars, _ := h.variables(c, &req)
	res, err := h.emails.RenderString(h.layout, req.Template, vars)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, emailPreviewResponse{
		Subject:    res.Subject,
		HTML:       res.HTML,
		Text:       res.Text,
		Unresolved: nonNil(placeholder.Unresolved(req.Template, vars)),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
