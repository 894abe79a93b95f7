package handlers

import (
	"errors"
	"net/http"

	"sipblog/internal/repository"
	"sipblog/internal/service"
)

type RegisterForm struct {
	Username        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.render(w, r, "register.page.html", &PageData{Title: "Register"})
		return
	}

	form := RegisterForm{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	data := &PageData{
		Title: "Register",
		FormData: map[string]string{
			"username": form.Username,
			"email":    form.Email,
		},
	}

	if err := h.Validate.Struct(form); err != nil {
		data.FormError = formErrorMessage(err)
		h.render(w, r, "register.page.html", data)
		return
	}

	_, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			data.FormError = "Email is already registered."
		case errors.Is(err, repository.ErrUsernameTaken):
			data.FormError = "Username is already taken."
		case errors.Is(err, repository.ErrUserExists):
			data.FormError = "Username or email is already taken."
		default:
			h.serverError(w, err)
			return
		}
		h.render(w, r, "register.page.html", data)
		return
	}

	setFlash(w, "success", "Your account has been created! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.render(w, r, "login.page.html", &PageData{Title: "Login"})
		return
	}

	form := LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	data := &PageData{
		Title:    "Login",
		FormData: map[string]string{"email": form.Email},
	}

	if err := h.Validate.Struct(form); err != nil {
		data.FormError = "Login failed. Check email and password."
		h.render(w, r, "login.page.html", data)
		return
	}

	_, session, err := h.AuthService.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		// unknown email and wrong password are indistinguishable on purpose
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrInvalidPassword) {
			data.FormError = "Login failed. Check email and password."
			h.render(w, r, "login.page.html", data)
			return
		}
		h.serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Expires,
		HttpOnly: true,
	})

	setFlash(w, "success", "Login successful!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			h.serverError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	setFlash(w, "success", "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
