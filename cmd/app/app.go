package app

import (
	"context"
	"log"

	"sipblog/internal/config"
	"sipblog/internal/database"
	"sipblog/internal/repository"
	"sipblog/internal/service"
	"sipblog/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// image storage backend
	var store storage.Storage
	if cfg.ImageStorage == "minio" {
		store, err = storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
	} else {
		store, err = storage.NewLocalStorage(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать хранилище изображений: %v", err)
		}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB, cfg.SessionDuration)

	services := service.NewService(repo, store)

	if err := repo.Session.DeleteExpired(context.Background()); err != nil {
		log.Printf("Внимание: не удалось очистить истекшие сессии: %v", err)
	}

	return db, repo, services
}
