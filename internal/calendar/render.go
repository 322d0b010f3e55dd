package calendar

import (
	_ "embed"
	"sync"

	"github.com/cbroglie/mustache"
)

//go:embed templates/calendar.mustache
var templateSource string

// compiledTemplate is built on first use and shared read-only afterwards.
var compiledTemplate = sync.OnceValues(func() (*mustache.Template, error) {
	tmpl, err := mustache.ParseString(templateSource)
	if err != nil {
		return nil, &TemplateError{Err: err}
	}
	return tmpl, nil
})

// ValidateTemplate compiles the bundled template. Shells call it at startup so
// a broken build fails before the first request.
func ValidateTemplate() error {
	_, err := compiledTemplate()
	return err
}

// Render executes the bundled template against m.
func Render(m *Model) (string, error) {
	tmpl, err := compiledTemplate()
	if err != nil {
		return "", err
	}
	out, err := tmpl.Render(m)
	if err != nil {
		return "", &TemplateError{Err: err}
	}
	return out, nil
}
