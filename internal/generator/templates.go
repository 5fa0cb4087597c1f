package generator

import (
	"bytes"
	"embed"
	"sync"
	"text/template"

	"github.com/cockroachdb/errors"
)

const (
	tmplRoot   = "root"
	tmplHeader = "header"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	fileTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	for _, name := range []string{tmplHeader} {
		if fileTmpl.Lookup(name) == nil {
			return errors.Newf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplRoot).ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		fileTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}

// renderHeader renders the comment placed at the top of every generated file.
func renderHeader(m headerModel) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := fileTmpl.ExecuteTemplate(&buf, tmplHeader, m); err != nil {
		return "", errors.Wrap(err, "render header")
	}
	return buf.String(), nil
}
