package service

import (
	"sync"

	"github.com/phrazzld/lessonkit/internal/domain"
)

// BlogService guards an in-memory blog for concurrent readers and writers.
type BlogService struct {
	mu   sync.RWMutex
	blog *domain.Blog
}

// NewBlogService wraps a new blog.
func NewBlogService(opts ...domain.BlogOption) *BlogService {
	return &BlogService{blog: domain.NewBlog(opts...)}
}

// AddPost publishes a post.
func (s *BlogService) AddPost(title, content, author string) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blog.AddPost(title, content, author)
}

// Get returns a post or domain.ErrPostNotFound.
func (s *BlogService) Get(id int) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.blog.Get(id)
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return p, nil
}

// Edit changes the title and/or content of a post.
func (s *BlogService) Edit(id int, title, content *string) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blog.Edit(id, title, content)
}

// Delete removes a post or returns domain.ErrPostNotFound.
func (s *BlogService) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.blog.Delete(id) {
		return domain.ErrPostNotFound
	}
	return nil
}

// List returns all posts, or only those by author when author is not empty.
func (s *BlogService) List(author string, newestFirst bool) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if author != "" {
		return s.blog.ByAuthor(author, newestFirst)
	}
	return s.blog.ListAll(newestFirst)
}

// Latest returns up to n of the newest posts.
func (s *BlogService) Latest(n int) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blog.Latest(n)
}
