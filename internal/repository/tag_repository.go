package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sipblog/internal/models"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByPostID(ctx context.Context, postID int) ([]models.Tag, error) {
	var tags []models.Tag

	query := `SELECT t.id, t.name FROM tags t JOIN post_tag pt ON pt.tag_id = t.id WHERE pt.post_id = $1 ORDER BY t.name ASC`

	err := r.db.SelectContext(ctx, &tags, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов поста: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	err := r.db.SelectContext(ctx, &tags, `SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}

	return tags, nil
}
