package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"sipblog/internal/repository"
	"sipblog/internal/service"
)

type PostForm struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// Sip renders the project blog: all posts newest first, each with its
// comment threads. Admins also see hidden comments.
func (h *Handlers) Sip(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)

	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		comments, err := h.CommentService.ThreadsForPost(r.Context(), post.ID, user.IsAdmin())
		if err != nil {
			h.serverError(w, err)
			return
		}
		views = append(views, PostView{Post: post, Comments: comments})
	}

	h.render(w, r, "sip.page.html", &PageData{
		Title:       "Project Blog",
		CurrentUser: user,
		Posts:       views,
	})
}

func (h *Handlers) AddPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, "add_post.page.html", &PageData{Title: "New Post"})
		return
	}

	if err := h.parsePostForm(r); err != nil {
		h.serverError(w, err)
		return
	}

	form := PostForm{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	data := &PageData{
		Title: "New Post",
		FormData: map[string]string{
			"title":   form.Title,
			"content": form.Content,
			"tags":    r.FormValue("tags"),
		},
	}

	if err := h.Validate.Struct(form); err != nil {
		data.FormError = formErrorMessage(err)
		h.render(w, r, "add_post.page.html", data)
		return
	}

	user := h.currentUser(r)

	req := service.CreatePostRequest{
		AuthorID: user.ID,
		Title:    form.Title,
		Content:  form.Content,
		Tags:     splitTags(r.FormValue("tags")),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if header.Filename != "" {
			req.Image = file
			req.ImageName = header.Filename
			req.ImageSize = header.Size
		}
	}

	if _, err := h.PostService.CreatePost(r.Context(), req); err != nil {
		h.serverError(w, err)
		return
	}

	setFlash(w, "success", "Post created successfully!")
	http.Redirect(w, r, "/sip", http.StatusSeeOther)
}

// UpdatePost is reachable by any logged-in user, the admin check lives in
// the body: non-admins get an explicit 403, not a redirect.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if !user.IsAdmin() {
		h.forbidden(w)
		return
	}

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.notFound(w)
			return
		}
		h.serverError(w, err)
		return
	}

	if r.Method != http.MethodPost {
		h.render(w, r, "update_post.page.html", &PageData{
			Title:       "Update Post",
			CurrentUser: user,
			Post:        post,
			FormData: map[string]string{
				"title":   post.Title,
				"content": post.Content,
			},
		})
		return
	}

	form := PostForm{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, "update_post.page.html", &PageData{
			Title:       "Update Post",
			CurrentUser: user,
			Post:        post,
			FormError:   formErrorMessage(err),
			FormData: map[string]string{
				"title":   form.Title,
				"content": form.Content,
			},
		})
		return
	}

	err = h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:  postID,
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.notFound(w)
			return
		}
		h.serverError(w, err)
		return
	}

	setFlash(w, "success", "Your post has been updated!")
	http.Redirect(w, r, "/sip", http.StatusSeeOther)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.notFound(w)
			return
		}
		h.serverError(w, err)
		return
	}

	setFlash(w, "success", "Your post has been deleted!")
	http.Redirect(w, r, "/sip", http.StatusSeeOther)
}

// parsePostForm handles both multipart submissions (with an image) and
// plain urlencoded ones.
func (h *Handlers) parsePostForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(h.Cfg.MaxUploadSize)
	}
	return r.ParseForm()
}

func splitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Split(value, ",")
}
