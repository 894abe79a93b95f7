package service

import (
	"sipblog/internal/repository"
	"sipblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.Session),
		Post:    NewPostService(rep.Post, rep.Tag, storage),
		Comment: NewCommentService(rep.Comment),
	}
}
