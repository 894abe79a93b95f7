package handlers

import (
	"fmt"
	"net/http"
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.page.html", &PageData{Title: "Home"})
}

func (h *Handlers) SipBrief(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "sip_brief.page.html", &PageData{Title: "SIP Brief"})
}

func (h *Handlers) Boards(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "boards.page.html", &PageData{Title: "Boards"})
}

func (h *Handlers) Projects(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "projects.page.html", &PageData{Title: "Projects"})
}

// TestDB is a plain-text connectivity probe.
func (h *Handlers) TestDB(w http.ResponseWriter, r *http.Request) {
	count, err := h.UserRepo.CountUsers(r.Context())
	if err != nil {
		fmt.Fprintf(w, "Database connection failed: %v", err)
		return
	}
	fmt.Fprintf(w, "Database connection successful! User count: %d", count)
}
