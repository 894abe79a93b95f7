package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sipblog/internal/models"
)

// 32 байта = 64 символа в hex
const tokenLength = 32

type sessionRepository struct {
	db       *sqlx.DB
	duration time.Duration
}

func NewSessionRepository(db *sqlx.DB, duration time.Duration) SessionRepository {
	if duration <= 0 {
		duration = 24 * time.Hour
	}
	return &sessionRepository{db: db, duration: duration}
}

// Create issues a fresh session for the user. Existing sessions of the same
// user are dropped first, one active session per user.
func (r *sessionRepository) Create(ctx context.Context, userID int) (*models.Session, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("ошибка при удалении старых сессий: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	now := time.Now().UTC()
	session := &models.Session{
		Token:   token,
		UserID:  userID,
		Expires: now.Add(r.duration),
		Created: now,
	}

	query := `INSERT INTO sessions (token, user_id, expires, created) VALUES ($1, $2, $3, $4)`

	_, err = r.db.ExecContext(ctx, query, session.Token, session.UserID, session.Expires, session.Created)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return session, nil
}

func (r *sessionRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	var session models.Session

	query := `SELECT token, user_id, expires, created FROM sessions WHERE token = $1`

	err := r.db.GetContext(ctx, &session, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("ошибка при получении сессии: %w", err)
	}

	if time.Now().After(session.Expires) {
		// expired rows are removed lazily, on first use
		_ = r.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	var user models.User

	err = r.db.GetContext(ctx, &user,
		`SELECT id, username, email, password_hash, role FROM users WHERE id = $1`, session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = r.Delete(ctx, token)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя сессии: %w", err)
	}

	return &user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires < $1`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка очистки истекших сессий: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
