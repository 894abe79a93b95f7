package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"sipblog/internal/models"
)

var (
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrEmailTaken      = errors.New("email уже занят")
	ErrUsernameTaken   = errors.New("имя пользователя уже занято")
	ErrUserExists      = errors.New("пользователь уже существует")
	ErrInvalidPassword = errors.New("неверный пароль")
	ErrPostNotFound    = errors.New("пост не найден")
	ErrCommentNotFound = errors.New("комментарий не найден")
	ErrParentMismatch  = errors.New("родительский комментарий принадлежит другому посту")
	ErrEmptyComment    = errors.New("пустой комментарий")
	ErrSessionNotFound = errors.New("сессия не найдена")
	ErrSessionExpired  = errors.New("сессия истекла")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetByID(ctx context.Context, userID int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, postID int) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int, includeHidden bool) ([]models.Comment, error)
	Hide(ctx context.Context, commentID int, hidden bool) error
}

type TagRepository interface {
	GetByPostID(ctx context.Context, postID int) ([]models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
}

type SessionRepository interface {
	Create(ctx context.Context, userID int) (*models.Session, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Tag     TagRepository
	Session SessionRepository
}

func NewRepository(db *sqlx.DB, sessionDuration time.Duration) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Tag:     NewTagRepository(db),
		Session: NewSessionRepository(db, sessionDuration),
	}
}
