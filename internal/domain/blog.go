package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrPostNotFound is returned when a post id is unknown.
var ErrPostNotFound = errors.New("post not found")

const (
	previewLimit  = 60
	previewCutoff = 57
)

// Post is a blog entry with creation and edit timestamps.
type Post struct {
	ID        int
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPost creates a post stamped with now. The title is trimmed and must not be blank;
// the content may be empty.
func NewPost(id int, title, content, author string, now time.Time) (*Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Post{
		ID:        id,
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Edit replaces the title and/or content (nil leaves a field untouched) and
// bumps UpdatedAt. A blank title is rejected without changing anything.
func (p *Post) Edit(title, content *string, now time.Time) error {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return ErrEmptyTitle
		}
		p.Title = trimmed
	}
	if content != nil {
		p.Content = *content
	}
	p.UpdatedAt = now
	return nil
}

// Preview flattens newlines and shortens the content to at most 60 characters.
func (p Post) Preview() string {
	text := []rune(strings.ReplaceAll(p.Content, "\n", " "))
	if len(text) <= previewLimit {
		return string(text)
	}
	return string(text[:previewCutoff]) + "..."
}

// Blog holds posts in memory.
type Blog struct {
	posts  map[int]*Post
	nextID int
	now    func() time.Time
}

// BlogOption customizes a Blog.
type BlogOption func(*Blog)

// WithBlogClock overrides the clock used for timestamps.
func WithBlogClock(now func() time.Time) BlogOption {
	return func(b *Blog) { b.now = now }
}

// NewBlog returns an empty blog.
func NewBlog(opts ...BlogOption) *Blog {
	b := &Blog{
		posts:  make(map[int]*Post),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPost publishes a new post.
func (b *Blog) AddPost(title, content, author string) (Post, error) {
	p, err := NewPost(b.nextID, title, content, author, b.now())
	if err != nil {
		return Post{}, err
	}
	b.posts[p.ID] = p
	b.nextID++
	return *p, nil
}

// Get returns the post with the given id.
func (b *Blog) Get(id int) (Post, bool) {
	p, ok := b.posts[id]
	if !ok {
		return Post{}, false
	}
	return *p, true
}

// Edit updates a post in place.
func (b *Blog) Edit(id int, title, content *string) (Post, error) {
	p, ok := b.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	if err := p.Edit(title, content, b.now()); err != nil {
		return Post{}, err
	}
	return *p, nil
}

// Delete removes a post and reports whether it existed.
func (b *Blog) Delete(id int) bool {
	if _, ok := b.posts[id]; !ok {
		return false
	}
	delete(b.posts, id)
	return true
}

// ListAll returns every post ordered by creation time.
func (b *Blog) ListAll(newestFirst bool) []Post {
	return b.collect(func(*Post) bool { return true }, newestFirst)
}

// ByAuthor returns the posts written by author.
func (b *Blog) ByAuthor(author string, newestFirst bool) []Post {
	return b.collect(func(p *Post) bool { return p.Author == author }, newestFirst)
}

// Latest returns up to n of the newest posts.
func (b *Blog) Latest(n int) []Post {
	all := b.ListAll(true)
	if n < 0 {
		n = 0
	}
	if n < len(all) {
		all = all[:n]
	}
	return all
}

func (b *Blog) collect(keep func(*Post) bool, newestFirst bool) []Post {
	out := make([]Post, 0, len(b.posts))
	for _, p := range b.posts {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if !a.CreatedAt.Equal(c.CreatedAt) {
			if newestFirst {
				return a.CreatedAt.After(c.CreatedAt)
			}
			return a.CreatedAt.Before(c.CreatedAt)
		}
		// ids grow with insertion order
		if newestFirst {
			return a.ID > c.ID
		}
		return a.ID < c.ID
	})
	return out
}
