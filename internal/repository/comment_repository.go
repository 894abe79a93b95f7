package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sipblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a comment. A parent reference, when present, must point to
// a comment on the same post.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ParentID.Valid {
		var parentPostID int

		err := r.db.GetContext(ctx, &parentPostID,
			`SELECT post_id FROM comments WHERE id = $1`, comment.ParentID.Int64)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCommentNotFound
			}
			return fmt.Errorf("ошибка при проверке родительского комментария: %w", err)
		}

		if parentPostID != comment.PostID {
			return ErrParentMismatch
		}
	}

	comment.Date = time.Now().UTC()

	query := `INSERT INTO comments (content, date, is_hidden, user_id, post_id, parent_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		comment.Content, comment.Date, comment.IsHidden,
		comment.UserID, comment.PostID, comment.ParentID,
	).Scan(&comment.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23503: the post the comment points at does not exist
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrPostNotFound
		}
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID int, includeHidden bool) ([]models.Comment, error) {
	var comments []models.Comment

	query := `SELECT c.id, c.content, c.date, c.is_hidden, c.user_id, c.post_id, c.parent_id, u.username AS author_name FROM comments c JOIN users u ON u.id = c.user_id WHERE c.post_id = $1 AND (c.is_hidden = FALSE OR $2) ORDER BY c.date ASC, c.id ASC`

	err := r.db.SelectContext(ctx, &comments, query, postID, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

// Hide toggles the moderation flag. There is no route for it yet, the
// listing already honours the flag.
func (r *commentRepository) Hide(ctx context.Context, commentID int, hidden bool) error {
	query := `UPDATE comments SET is_hidden = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, hidden, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при изменении видимости комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
