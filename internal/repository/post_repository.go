package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sipblog/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its tag associations in one transaction.
// Tags are created on demand; existing names are reused.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	post.Date = time.Now().UTC()

	query := `INSERT INTO posts (title, date, content, image_path, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err = tx.QueryRowContext(ctx, query, post.Title, post.Date, post.Content, post.ImagePath, post.UserID).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	for _, name := range tagNames {
		var tagID int

		// upsert keeps tag names unique and returns the existing id
		err = tx.QueryRowContext(ctx,
			`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
			name,
		).Scan(&tagID)
		if err != nil {
			return fmt.Errorf("ошибка при создании тега: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_tag (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			post.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("ошибка при привязке тега: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	var post models.Post

	query := `SELECT p.id, p.title, p.date, p.content, p.image_path, p.user_id, u.username AS author_name FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetAll returns every post, newest first. Ties on the timestamp are broken
// by id so the order stays stable for posts created in the same instant.
func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT p.id, p.title, p.date, p.content, p.image_path, p.user_id, u.username AS author_name FROM posts p JOIN users u ON u.id = p.user_id ORDER BY p.date DESC, p.id DESC`

	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = $1, content = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete removes the post together with its comments and tag associations.
// Comments reference posts, so they are deleted explicitly and the whole
// operation commits or rolls back as a unit.
func (r *postRepository) Delete(ctx context.Context, postID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("ошибка при удалении комментариев поста: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tag WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("ошибка при удалении тегов поста: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
