package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sipblog/internal/repository"
	"sipblog/internal/service"
)

// AddComment creates a comment on a post. An optional parent_id form field
// makes it a reply; the parent must be a comment on the same post.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w)
		return
	}

	parentID, _ := strconv.Atoi(r.FormValue("parent_id"))

	_, err = h.CommentService.AddComment(r.Context(), service.AddCommentRequest{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  r.FormValue("content"),
		ParentID: parentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyComment),
			errors.Is(err, repository.ErrCommentNotFound),
			errors.Is(err, repository.ErrParentMismatch):
			setFlash(w, "danger", "Comment failed. Please try again.")
			http.Redirect(w, r, "/sip", http.StatusSeeOther)
		case errors.Is(err, repository.ErrPostNotFound):
			h.notFound(w)
		default:
			h.serverError(w, err)
		}
		return
	}

	setFlash(w, "success", "Your comment has been added!")
	http.Redirect(w, r, "/sip", http.StatusSeeOther)
}
