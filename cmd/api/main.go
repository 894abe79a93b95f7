package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"sipblog/cmd/app"
	"sipblog/internal/config"
	handlers "sipblog/internal/handler"
	"sipblog/internal/mailer"
	"sipblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.Mail.APIKey == "" {
		log.Println("Внимание: SMTP2GO_API_KEY не установлен, отправка почты будет завершаться ошибкой")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, mailer.NewSMTP2GoClient(cfg), cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/sip", handler.Sip).Methods(http.MethodGet)
	r.HandleFunc("/sip_brief", handler.SipBrief).Methods(http.MethodGet)
	r.HandleFunc("/boards", handler.Boards).Methods(http.MethodGet)
	r.HandleFunc("/projects", handler.Projects).Methods(http.MethodGet)
	r.HandleFunc("/contact", handler.Contact).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/test_db", handler.TestDB).Methods(http.MethodGet)

	r.HandleFunc("/register", handler.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", handler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", handler.RequireLogin(handler.Logout)).Methods(http.MethodGet)

	r.HandleFunc("/sip/add", handler.RequireAdmin(handler.AddPost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/update", handler.RequireLogin(handler.UpdatePost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/delete", handler.RequireAdmin(handler.DeletePost)).Methods(http.MethodGet)
	r.HandleFunc("/post/{id:[0-9]+}/comment", handler.RequireLogin(handler.AddComment)).Methods(http.MethodPost)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	handlerChain := middleware.Chain(
		r,
		middleware.RecoverMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
