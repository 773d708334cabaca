package convert

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"hslc/config"
)

// LabelValues is a struct that holds variables we make available for wheel
// label template expansion.
type LabelValues struct {
	Index int
	// Hue in degrees
	Hue float64
	HSL string
	RGB string
}

func parseTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func expandTemplate(tmpl *template.Template, values LabelValues) (string, error) {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
