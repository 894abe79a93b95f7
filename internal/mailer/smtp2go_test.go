package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipblog/internal/config"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		Mail: config.Mail{
			APIKey:    "api-test-key",
			APIURL:    apiURL,
			Recipient: "owner@example.com",
			Subject:   "Contact",
			Timeout:   5 * time.Second,
		},
	}
}

func TestSMTP2GoClient_Send(t *testing.T) {
	t.Run("Успешная отправка передает все поля", func(t *testing.T) {
		var got sendRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewSMTP2GoClient(testConfig(srv.URL))

		err := client.Send(context.Background(), "visitor@example.com", "Hello", "Name: Bob\nMessage: hi")

		require.NoError(t, err)
		assert.Equal(t, "api-test-key", got.APIKey)
		assert.Equal(t, "visitor@example.com", got.Sender)
		assert.Equal(t, []string{"owner@example.com"}, got.To)
		assert.Equal(t, "Hello", got.Subject)
		assert.Equal(t, "Name: Bob\nMessage: hi", got.TextBody)
	})

	t.Run("Не-2xx ответ становится ошибкой", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewSMTP2GoClient(testConfig(srv.URL))

		err := client.Send(context.Background(), "visitor@example.com", "Hello", "body")

		assert.ErrorContains(t, err, "статус 500")
	})

	t.Run("Недоступный API становится ошибкой", func(t *testing.T) {
		client := NewSMTP2GoClient(testConfig("http://127.0.0.1:1"))

		err := client.Send(context.Background(), "visitor@example.com", "Hello", "body")

		assert.Error(t, err)
	})
}
