package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"sipblog/internal/models"
)

// Ключ advisory-блокировки для назначения роли admin первому пользователю.
const firstAdminLockID = 744311

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser persists a new user with a hashed password. The very first row
// ever inserted gets the admin role; the count and the insert run under an
// advisory transaction lock so concurrent registrations cannot both win.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, firstAdminLockID); err != nil {
		return fmt.Errorf("ошибка при получении блокировки: %w", err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	user.Role = models.RoleUser
	if count == 0 {
		user.Role = models.RoleAdmin
	}

	query := `INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`

	err = tx.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if uniqueErr := uniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// uniqueViolation maps a Postgres 23505 error to a user-visible sentinel.
// An unrecognized constraint name still reads as a duplicate, not as an
// internal error.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pqErr.Constraint, "email") {
		return ErrEmailTaken
	}
	if strings.Contains(pqErr.Constraint, "username") {
		return ErrUsernameTaken
	}
	return ErrUserExists
}

func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password_hash, role FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password_hash, role FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

// VerifyPassword never panics on a malformed digest: bcrypt returns an error
// and the caller sees the same ErrInvalidPassword as for a wrong password.
func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	return count, nil
}
