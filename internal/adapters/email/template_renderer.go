package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"fleetadmin/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Parsed once; every file under templates/ is addressable by its base name.
var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.html"))
	textTemplates = template.Must(template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt"))
)

type templateRenderer struct{}

// NewTemplateRenderer returns a renderer over the embedded templates. Message
// "x" is made of x_subject.txt, x.html and x.txt.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return templateRenderer{}
}

func (templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err = executeText(&buf, name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if htmlTemplates.Lookup(name+".html") == nil {
		return "", "", "", fmt.Errorf("render %s html: template not found", name)
	}
	if err = htmlTemplates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err = executeText(&buf, name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return subject, htmlBody, buf.String(), nil
}

func executeText(buf *bytes.Buffer, file string, data any) error {
	if textTemplates.Lookup(file) == nil {
		return fmt.Errorf("template %q not found", file)
	}
	return textTemplates.ExecuteTemplate(buf, file, data)
}
