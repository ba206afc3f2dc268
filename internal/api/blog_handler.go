package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

// BlogHandler serves blog posts.
type BlogHandler struct {
	blog   *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blog *service.BlogService, logger *slog.Logger) *BlogHandler {
	if blog == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("blog cannot be nil")
	}
	return &BlogHandler{blog: blog, logger: componentLogger(logger, "blog_handler")}
}

// ListPosts handles GET /api/posts.
//
// Query parameters: author filters by author, order=oldest reverses the
// default newest-first order and latest=n returns the n newest posts.
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var posts []domain.Post
	if raw := q.Get("latest"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid latest")
			return
		}
		posts = h.blog.Latest(n)
	} else {
		posts = h.blog.List(q.Get("author"), q.Get("order") != "oldest")
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, postToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreatePost handles POST /api/posts.
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreatePostRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	post, err := h.blog.AddPost(req.Title, req.Content, req.Author)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
}

// EditPost handles PATCH /api/posts/{id}.
func (h *BlogHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}

	var req EditPostRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	post, err := h.blog.Edit(int(id), req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to edit post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.blog.Delete(int(id)); err != nil {
		HandleAPIError(w, r, err, "Failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
