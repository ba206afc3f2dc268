package domain

import (
	"fmt"
	"strings"
	"time"
)

// Book year and rating bounds. The upper year bound is relative to the
// current year; see MaxBookYear.
const (
	MinBookYear       = 1000
	bookYearLookahead = 5
	MinBookRating     = 0.0
	MaxBookRating     = 10.0
)

// MaxBookYear is the latest accepted publication year for the given moment.
func MaxBookYear(now time.Time) int {
	return now.Year() + bookYearLookahead
}

// Book is a catalogue entry.
type Book struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Year   int      `json:"year"`
	Genre  string   `json:"genre"`
	ISBN   *string  `json:"isbn"`
	Rating *float64 `json:"rating"`
}

// Validate checks the book against the catalogue rules as of now.
func (b *Book) Validate(now time.Time) error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: book title", ErrEmptyTitle)
	}
	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("%w: author", ErrEmptyName)
	}
	if maxYear := MaxBookYear(now); b.Year < MinBookYear || b.Year > maxYear {
		return fmt.Errorf("%w: publication year %d not in %d..%d", ErrOutOfRange, b.Year, MinBookYear, maxYear)
	}
	if b.Rating != nil && (*b.Rating < MinBookRating || *b.Rating > MaxBookRating) {
		return fmt.Errorf("%w: rating %.1f not in %.1f..%.1f", ErrOutOfRange, *b.Rating, MinBookRating, MaxBookRating)
	}
	return nil
}

// SampleBooks is the catalogue written when no books file exists yet.
func SampleBooks() []Book {
	isbn := func(s string) *string { return &s }
	rating := func(f float64) *float64 { return &f }
	return []Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949, Genre: "Dystopian", ISBN: isbn("978-0-452-28423-4"), Rating: rating(9.2)},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960, Genre: "Classic", ISBN: isbn("978-0-06-112008-4"), Rating: rating(8.9)},
		{ID: 3, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925, Genre: "Classic", ISBN: isbn("978-0-7432-7356-5"), Rating: rating(8.5)},
		{ID: 4, Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", Year: 1997, Genre: "Fantasy", ISBN: isbn("978-0-439-70818-8"), Rating: rating(9.0)},
		{ID: 5, Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937, Genre: "Fantasy", ISBN: isbn("978-0-547-92822-7"), Rating: rating(8.8)},
		{ID: 6, Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, Genre: "Romance", ISBN: isbn("978-0-14-143951-8"), Rating: rating(8.7)},
		{ID: 7, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Year: 1951, Genre: "Classic", ISBN: isbn("978-0-316-76948-0"), Rating: rating(7.8)},
	}
}

// SameWork reports whether two books share a title and author, ignoring case
// and surrounding whitespace.
func (b *Book) SameWork(title, author string) bool {
	return strings.EqualFold(strings.TrimSpace(b.Title), strings.TrimSpace(title)) &&
		strings.EqualFold(strings.TrimSpace(b.Author), strings.TrimSpace(author))
}

// Matches reports whether query occurs in the title, author or genre, ignoring case.
func (b *Book) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Genre), q)
}

// BookUpdate names the fields to change; nil fields are left alone.
type BookUpdate struct {
	Title  *string  `json:"title,omitempty"`
	Author *string  `json:"author,omitempty"`
	Year   *int     `json:"year,omitempty"`
	Genre  *string  `json:"genre,omitempty"`
	ISBN   *string  `json:"isbn,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Year == nil &&
		u.Genre == nil && u.ISBN == nil && u.Rating == nil
}

// Apply returns a copy of b with the update applied and validated. On error
// the original book is untouched.
func (u BookUpdate) Apply(b Book, now time.Time) (Book, error) {
	if u.IsEmpty() {
		return Book{}, ErrNoFieldsToUpdate
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Year != nil {
		b.Year = *u.Year
	}
	if u.Genre != nil {
		b.Genre = *u.Genre
	}
	if u.ISBN != nil {
		isbn := *u.ISBN
		b.ISBN = &isbn
	}
	if u.Rating != nil {
		rating := *u.Rating
		b.Rating = &rating
	}
	if err := b.Validate(now); err != nil {
		return Book{}, err
	}
	return b, nil
}

// BookStatistics summarizes the catalogue.
type BookStatistics struct {
	Total  int            `json:"total"`
	Genres map[string]int `json:"genres,omitempty"`
	Oldest int            `json:"oldest,omitempty"`
	Newest int            `json:"newest,omitempty"`
}

// ComputeBookStatistics counts genres and finds the publication year range.
func ComputeBookStatistics(books []Book) BookStatistics {
	stats := BookStatistics{Total: len(books)}
	if len(books) == 0 {
		return stats
	}
	stats.Genres = make(map[string]int)
	stats.Oldest, stats.Newest = books[0].Year, books[0].Year
	for _, b := range books {
		stats.Genres[b.Genre]++
		stats.Oldest = min(stats.Oldest, b.Year)
		stats.Newest = max(stats.Newest, b.Year)
	}
	return stats
}
