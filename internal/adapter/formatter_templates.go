package adapter

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var formatterTemplateFS embed.FS

var (
	formatterTemplates *template.Template
	formatterOnce      sync.Once
	formatterErr       error
)

func executeFormatterTemplate(name string, data any) (string, error) {
	formatterOnce.Do(func() {
		formatterTemplates, formatterErr = template.New("formatter").ParseFS(formatterTemplateFS, "templates/*.tmpl")
	})
	if formatterErr != nil {
		return "", fmt.Errorf("parse templates: %w", formatterErr)
	}

	var builder strings.Builder
	if err := formatterTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}
