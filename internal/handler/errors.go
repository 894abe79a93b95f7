package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func (h *Handlers) serverError(w http.ResponseWriter, err error) {
	log.Printf("внутренняя ошибка: %v", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handlers) notFound(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (h *Handlers) forbidden(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

// formErrorMessage turns a validator error into one short user-facing line.
func formErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "eqfield":
				return "Passwords do not match."
			case "email":
				return "Please enter a valid email address."
			}
		}
	}
	return "Please fill in all required fields."
}
