package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sipblog/internal/models"
	"sipblog/internal/repository"
	"sipblog/internal/service"
)

func TestRegister(t *testing.T) {
	t.Run("GET отдает форму регистрации", func(t *testing.T) {
		h, _ := newTestHandlers(t)

		w := httptest.NewRecorder()
		h.Register(w, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="confirm_password"`)
	})

	t.Run("Успешная регистрация ведет на логин", func(t *testing.T) {
		h, m := newTestHandlers(t)

		m.auth.On("Register", mock.Anything, service.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		}).Return(&models.User{ID: 1, Username: "alice", Role: models.RoleAdmin}, nil)

		w := httptest.NewRecorder()
		h.Register(w, postForm("/register", url.Values{
			"username":         {"alice"},
			"email":            {"alice@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		flash := flashMessage(t, w.Result())
		assert.Equal(t, "success", flash.Kind)
		assert.Equal(t, "Your account has been created! Please log in.", flash.Message)
	})

	t.Run("Несовпадающие пароли не доходят до сервиса", func(t *testing.T) {
		h, m := newTestHandlers(t)

		w := httptest.NewRecorder()
		h.Register(w, postForm("/register", url.Values{
			"username":         {"alice"},
			"email":            {"alice@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"other"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Passwords do not match.")
		// введенные значения сохраняются в форме
		assert.Contains(t, w.Body.String(), `value="alice"`)
		m.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Занятый email показывает ошибку формы", func(t *testing.T) {
		h, m := newTestHandlers(t)

		m.auth.On("Register", mock.Anything, mock.Anything).Return(nil, repository.ErrEmailTaken)

		w := httptest.NewRecorder()
		h.Register(w, postForm("/register", url.Values{
			"username":         {"alice"},
			"email":            {"alice@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Email is already registered.")
	})

	t.Run("Дубликат с неизвестным ограничением тоже ошибка формы", func(t *testing.T) {
		h, m := newTestHandlers(t)

		m.auth.On("Register", mock.Anything, mock.Anything).Return(nil, repository.ErrUserExists)

		w := httptest.NewRecorder()
		h.Register(w, postForm("/register", url.Values{
			"username":         {"dave"},
			"email":            {"dave@example.com"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username or email is already taken.")
	})

	t.Run("Авторизованный пользователь уходит на главную", func(t *testing.T) {
		h, m := newTestHandlers(t)
		expectUser(m, "tok", &models.User{ID: 1, Role: models.RoleUser})

		w := httptest.NewRecorder()
		h.Register(w, withSession(httptest.NewRequest(http.MethodGet, "/register", nil), "tok"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	t.Run("Успешный вход ставит сессионную cookie", func(t *testing.T) {
		h, m := newTestHandlers(t)

		session := &models.Session{Token: "fresh-token", UserID: 1, Expires: time.Now().Add(time.Hour)}
		m.auth.On("Login", mock.Anything, "alice@example.com", "secret123").
			Return(&models.User{ID: 1, Username: "alice"}, session, nil)

		w := httptest.NewRecorder()
		h.Login(w, postForm("/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"secret123"},
		}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		var sessionCookie *http.Cookie
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == sessionCookieName {
				sessionCookie = cookie
			}
		}
		if assert.NotNil(t, sessionCookie) {
			assert.Equal(t, "fresh-token", sessionCookie.Value)
			assert.True(t, sessionCookie.HttpOnly)
		}
	})

	t.Run("Неизвестный email и неверный пароль неразличимы", func(t *testing.T) {
		for name, err := range map[string]error{
			"неизвестный email": repository.ErrUserNotFound,
			"неверный пароль":   repository.ErrInvalidPassword,
		} {
			t.Run(name, func(t *testing.T) {
				h, m := newTestHandlers(t)

				m.auth.On("Login", mock.Anything, "alice@example.com", "bad").Return(nil, nil, err)

				w := httptest.NewRecorder()
				h.Login(w, postForm("/login", url.Values{
					"email":    {"alice@example.com"},
					"password": {"bad"},
				}))

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Contains(t, w.Body.String(), "Login failed. Check email and password.")
			})
		}
	})

	t.Run("Невалидная форма не доходит до сервиса", func(t *testing.T) {
		h, m := newTestHandlers(t)

		w := httptest.NewRecorder()
		h.Login(w, postForm("/login", url.Values{
			"email":    {"not-an-email"},
			"password": {"secret123"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Login failed. Check email and password.")
		m.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Выход сносит сессию и cookie", func(t *testing.T) {
		h, m := newTestHandlers(t)

		m.auth.On("Logout", mock.Anything, "tok").Return(nil)

		w := httptest.NewRecorder()
		h.Logout(w, withSession(httptest.NewRequest(http.MethodGet, "/logout", nil), "tok"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		m.auth.AssertCalled(t, "Logout", mock.Anything, "tok")

		var cleared bool
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == sessionCookieName && cookie.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "сессионная cookie должна быть сброшена")

		flash := flashMessage(t, w.Result())
		assert.Equal(t, "You have been logged out.", flash.Message)
	})
}
