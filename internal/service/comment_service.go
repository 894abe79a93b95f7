package service

import (
	"context"
	"database/sql"
	"strings"

	"sipblog/internal/models"
	"sipblog/internal/repository"
)

// Глубже этого ветки не показываем, дальнейшие ответы прижимаются к границе.
const maxThreadDepth = 32

type AddCommentRequest struct {
	PostID   int
	AuthorID int
	Content  string
	ParentID int // 0 = комментарий верхнего уровня
}

// ThreadEntry is one row of a flattened comment thread, ready for iterative
// rendering: no recursion in the templates.
type ThreadEntry struct {
	Comment models.Comment
	Depth   int
}

type CommentService interface {
	AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error)
	ThreadsForPost(ctx context.Context, postID int, includeHidden bool) ([]ThreadEntry, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, repository.ErrEmptyComment
	}

	comment := &models.Comment{
		Content: content,
		UserID:  req.AuthorID,
		PostID:  req.PostID,
	}
	if req.ParentID > 0 {
		comment.ParentID = sql.NullInt64{Int64: int64(req.ParentID), Valid: true}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ThreadsForPost(ctx context.Context, postID int, includeHidden bool) ([]ThreadEntry, error) {
	comments, err := s.commentRepo.GetByPostID(ctx, postID, includeHidden)
	if err != nil {
		return nil, err
	}
	return BuildThread(comments), nil
}

// BuildThread arranges comments into display order: every comment follows
// its parent, indented one level deeper. The traversal is an explicit stack
// with a depth clamp; the data model rules out cycles (a parent belongs to
// the same post and differs from the comment), the guard stands anyway.
func BuildThread(comments []models.Comment) []ThreadEntry {
	byID := make(map[int]bool, len(comments))
	for _, c := range comments {
		byID[c.ID] = true
	}

	children := make(map[int][]models.Comment, len(comments))
	var roots []models.Comment
	for _, c := range comments {
		// a reply whose parent is filtered out renders at top level
		if c.ParentID.Valid && byID[int(c.ParentID.Int64)] {
			parentID := int(c.ParentID.Int64)
			children[parentID] = append(children[parentID], c)
			continue
		}
		roots = append(roots, c)
	}

	type frame struct {
		comment models.Comment
		depth   int
	}

	entries := make([]ThreadEntry, 0, len(comments))
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{comment: roots[i], depth: 0})
	}

	visited := make(map[int]bool, len(comments))
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.comment.ID] {
			continue
		}
		visited[top.comment.ID] = true

		entries = append(entries, ThreadEntry{Comment: top.comment, Depth: top.depth})

		depth := top.depth + 1
		if depth > maxThreadDepth {
			depth = maxThreadDepth
		}
		replies := children[top.comment.ID]
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{comment: replies[i], depth: depth})
		}
	}

	return entries
}
