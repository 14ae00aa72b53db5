package site

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"pdc/config"
	"pdc/misc"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context   string
	BookTitle string
	PageTitle string
	SiteTitle string
	Language  string
	BuildID   string
	Version   string
	Date      string
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)
	values.Version = misc.GetVersion()
	if values.Date == "" {
		values.Date = time.Now().Format("2006-01-02")
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
