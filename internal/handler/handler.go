package handlers

import (
	"github.com/go-playground/validator/v10"

	"sipblog/internal/config"
	"sipblog/internal/mailer"
	"sipblog/internal/repository"
	"sipblog/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	UserRepo       repository.UserRepository
	Mailer         mailer.Mailer
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, mailer mailer.Mailer, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		UserRepo:       repo.User,
		Mailer:         mailer,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
