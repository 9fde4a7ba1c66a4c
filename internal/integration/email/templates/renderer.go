// Package templates renders the account emails queued by registration.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

//go:embed *.html *.txt
var files embed.FS

// supported lists the template types with an HTML and a text body.
var supported = []entity.EmailTemplateType{
	entity.TemplateWelcome,
	entity.TemplateAccountCreated,
}

// WelcomeData fills the welcome and account_created templates.
type WelcomeData struct {
	UserName     string
	UserEmail    string
	DashboardURL string
}

// WelcomeDataFrom reads the queued job payload. Missing keys render as empty strings.
func WelcomeDataFrom(payload map[string]interface{}) WelcomeData {
	get := func(key string) string {
		s, _ := payload[key].(string)
		return s
	}
	return WelcomeData{
		UserName:     get("user_name"),
		UserEmail:    get("user_email"),
		DashboardURL: get("dashboard_url"),
	}
}

// Message is a rendered email body.
type Message struct {
	HTML string
	Text string
}

// Renderer renders the embedded templates by email template type.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates and fails if a supported type lacks a body.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(files, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	r := &Renderer{html: html, text: text}
	for _, t := range supported {
		if !r.Has(t) {
			return nil, fmt.Errorf("template %s needs both an .html and a .txt body", t)
		}
	}
	return r, nil
}

// Has reports whether both bodies of the template type exist.
func (r *Renderer) Has(t entity.EmailTemplateType) bool {
	name := string(t)
	return r.html.Lookup(name+".html") != nil && r.text.Lookup(name+".txt") != nil
}

// Render executes both bodies of the template type.
func (r *Renderer) Render(t entity.EmailTemplateType, data WelcomeData) (Message, error) {
	if !r.Has(t) {
		return Message{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("unknown template type %q", t),
			domainerror.ErrInvalidTemplate,
		)
	}

	name := string(t)
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Message{}, renderFailed(name+".html", err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Message{}, renderFailed(name+".txt", err)
	}
	return Message{HTML: html.String(), Text: text.String()}, nil
}

func renderFailed(file string, err error) error {
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemplateRenderFailed,
		"failed to render "+file,
		fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
	)
}
