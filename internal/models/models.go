package models

import (
	"database/sql"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Post struct {
	ID         int            `db:"id"`
	Title      string         `db:"title"`
	Date       time.Time      `db:"date"`
	Content    string         `db:"content"`
	ImagePath  sql.NullString `db:"image_path"`
	UserID     int            `db:"user_id"`
	AuthorName string         `db:"author_name"`
	Tags       []Tag          `db:"-"`
}

type Comment struct {
	ID         int           `db:"id"`
	Content    string        `db:"content"`
	Date       time.Time     `db:"date"`
	IsHidden   bool          `db:"is_hidden"`
	UserID     int           `db:"user_id"`
	PostID     int           `db:"post_id"`
	ParentID   sql.NullInt64 `db:"parent_id"`
	AuthorName string        `db:"author_name"`
}

type Tag struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Session struct {
	Token   string    `db:"token"`
	UserID  int       `db:"user_id"`
	Expires time.Time `db:"expires"`
	Created time.Time `db:"created"`
}
