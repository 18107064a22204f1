package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"

	"github.com/a-h/templ"

	"taskmanager_web/internal/models"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"formatTimestamp": formatTimestamp,
}

// templates holds one clone of the base layout per page
var templates = parseTemplates("task_list.html", "task_form.html", "error.html")

func parseTemplates(pages ...string) map[string]*template.Template {
	base := template.Must(template.New("base.html").Funcs(funcs).ParseFS(files, "html/base.html"))

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl := template.Must(base.Clone())
		template.Must(tmpl.ParseFS(files, path.Join("html", page)))
		out[page] = tmpl
	}
	return out
}

// component renders page inside the base layout
func component(page string, data interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, ok := templates[page]
		if !ok {
			return fmt.Errorf("template not found: %s", page)
		}
		return tmpl.ExecuteTemplate(w, "base", data)
	})
}

func formatTimestamp(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}
