package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"sipblog/internal/models"
	"sipblog/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

type PostView struct {
	models.Post
	Comments []service.ThreadEntry
}

type PageData struct {
	Title       string
	Path        string
	CurrentUser *models.User
	Flash       *Flash
	FormError   string
	FormData    map[string]string
	Posts       []PostView
	Post        *models.Post
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	// post content is sanitized before it ever reaches the database
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"mul": func(a, b int) int {
		return a * b
	},
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, pageFile string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}

	data.Path = r.URL.Path

	if data.CurrentUser == nil {
		data.CurrentUser = h.currentUser(r)
	}

	// one-time notice from the previous request, unless the handler
	// already set one for this render
	if data.Flash == nil {
		data.Flash = popFlash(w, r)
	}

	ts, err := template.New("").Funcs(functions).ParseFS(templateFS,
		"templates/base.layout.html",
		"templates/"+pageFile,
	)
	if err != nil {
		h.serverError(w, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		h.serverError(w, err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ошибка при записи ответа: %v", err)
	}
}
