package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"sipblog/internal/models"
	"sipblog/internal/repository"
	"sipblog/internal/storage"
)

type CreatePostRequest struct {
	AuthorID  int
	Title     string
	Content   string // markdown
	Tags      []string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type UpdatePostRequest struct {
	PostID  int
	Title   string
	Content string // markdown
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) error
	DeletePost(ctx context.Context, postID int) error
	GetPost(ctx context.Context, postID int) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		storage:  storage,
	}
}

var sanitizePolicy = bluemonday.UGCPolicy()

// renderMarkdown converts markdown to HTML and sanitizes the result. Content
// is stored pre-rendered, so everything that reaches the database is already
// safe to emit.
func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("ошибка при рендеринге markdown: %w", err)
	}
	return sanitizePolicy.Sanitize(buf.String()), nil
}

// CreatePost renders the markdown, stores the optional image and persists
// the post with its tags.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	html, err := renderMarkdown(req.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   req.Title,
		Content: html,
		UserID:  req.AuthorID,
	}

	if req.Image != nil && req.ImageName != "" {
		storedName, err := p.storage.SaveImage(ctx, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сохранении изображения: %w", err)
		}
		post.ImagePath = sql.NullString{String: storedName, Valid: true}
	}

	if err := p.postRepo.Create(ctx, post, normalizeTags(req.Tags)); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) error {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	html, err := renderMarkdown(req.Content)
	if err != nil {
		return err
	}

	post.Title = req.Title
	post.Content = html

	return p.postRepo.Update(ctx, post)
}

func (p *postService) DeletePost(ctx context.Context, postID int) error {
	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

// ListPosts returns all posts newest first with their tags attached.
func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := p.tagRepo.GetByPostID(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Tags = tags
	}

	return posts, nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := strings.ToLower(strings.TrimSpace(tag))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
