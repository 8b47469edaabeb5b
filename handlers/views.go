package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{
	"index", "register", "login", "dashboard", "profile",
	"calendar", "wellness", "simplegame",
}

// each page gets its own set so every page can define "content"
var pages = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		out[name] = template.Must(template.ParseFS(templateFiles,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return out
}()

// page is what every template receives
type page struct {
	Title    string
	Flash    string
	LoggedIn bool
	User     string
	Data     interface{}
}

// render executes a page into a buffer first so a template error can
// still become a clean 500.
func render(ctx context.Context, w http.ResponseWriter, r *http.Request, name, title string, data interface{}) {
	tmpl, ok := pages[name]
	if !ok {
		logRequest(ctx, "error", "Unknown template", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	user, loggedIn := Identity(ctx)
	p := page{
		Title:    title,
		Flash:    popFlash(w, r),
		LoggedIn: loggedIn,
		User:     user,
		Data:     data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		logRequest(ctx, "error", "Template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func serverError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	logRequest(ctx, "error", message, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
