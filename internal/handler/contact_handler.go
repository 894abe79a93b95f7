package handlers

import (
	"fmt"
	"net/http"
)

type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

// Contact renders the contact form and relays submissions by mail. One
// synchronous send attempt; on success the handler redirects to itself so a
// refresh does not resubmit.
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, "contact.page.html", &PageData{Title: "Contact"})
		return
	}

	form := ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	data := &PageData{
		Title: "Contact",
		FormData: map[string]string{
			"name":    form.Name,
			"email":   form.Email,
			"message": form.Message,
		},
	}

	if err := h.Validate.Struct(form); err != nil {
		data.FormError = formErrorMessage(err)
		h.render(w, r, "contact.page.html", data)
		return
	}

	body := fmt.Sprintf("Name: %s\nMessage: %s", form.Name, form.Message)

	if err := h.Mailer.Send(r.Context(), form.Email, h.Cfg.Mail.Subject, body); err != nil {
		data.Flash = &Flash{Kind: "danger", Message: "An error occurred while sending your message. Please try again."}
		h.render(w, r, "contact.page.html", data)
		return
	}

	setFlash(w, "success", "Your message has been sent successfully!")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
