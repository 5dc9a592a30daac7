package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Book struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Author          string     `json:"author" db:"author"`
	Pages           int        `json:"pages" db:"pages"`
	Chapters        *int       `json:"chapters,omitempty" db:"chapters"`
	CoverURL        *string    `json:"coverUrl,omitempty" db:"cover_url"`
	UserID          string     `json:"userId" db:"user_id"`
	Synopsis        *string    `json:"synopsis,omitempty" db:"synopsis"`
	Publisher       *string    `json:"publisher,omitempty" db:"publisher"`
	PublicationDate *time.Time `json:"publicationDate,omitempty" db:"publication_date"`
	Language        *string    `json:"language,omitempty" db:"language"`
	ISBN10          *string    `json:"isbn10,omitempty" db:"isbn10"`
	ISBN13          *string    `json:"isbn13,omitempty" db:"isbn13"`
	TypeOfMedia     *string    `json:"typeOfMedia,omitempty" db:"type_of_media"`
	Genres          Genres     `json:"genres" db:"genres"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// Genres is kept as a jsonb array.
type Genres []string

func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Genres) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("genres: unsupported type %T", src)
	}
	return json.Unmarshal(data, (*[]string)(g))
}

type BookRequest struct {
	Title           string     `json:"title" validate:"max=255"`
	Author          string     `json:"author" validate:"max=255"`
	Pages           int        `json:"pages"`
	Chapters        *int       `json:"chapters"`
	Synopsis        *string    `json:"synopsis"`
	Publisher       *string    `json:"publisher"`
	PublicationDate *time.Time `json:"publicationDate"`
	Language        *string    `json:"language"`
	ISBN10          *string    `json:"isbn10" validate:"omitempty,max=10,isbn10"`
	ISBN13          *string    `json:"isbn13" validate:"omitempty,max=13,isbn13"`
	TypeOfMedia     *string    `json:"typeOfMedia"`
	Genres          []string   `json:"genres" validate:"omitempty,dive,required,max=64"`
}

func (r BookRequest) ToBook(userID string) Book {
	return Book{
		Title:           r.Title,
		Author:          r.Author,
		Pages:           r.Pages,
		Chapters:        r.Chapters,
		UserID:          userID,
		Synopsis:        r.Synopsis,
		Publisher:       r.Publisher,
		PublicationDate: r.PublicationDate,
		Language:        r.Language,
		ISBN10:          r.ISBN10,
		ISBN13:          r.ISBN13,
		TypeOfMedia:     r.TypeOfMedia,
		Genres:          uniqueGenres(r.Genres),
	}
}

// BookPatch carries only the fields to change.
type BookPatch struct {
	Title           *string    `json:"title" validate:"omitempty,max=255"`
	Author          *string    `json:"author" validate:"omitempty,max=255"`
	Pages           *int       `json:"pages"`
	Chapters        *int       `json:"chapters"`
	Synopsis        *string    `json:"synopsis"`
	Publisher       *string    `json:"publisher"`
	PublicationDate *time.Time `json:"publicationDate"`
	Language        *string    `json:"language"`
	ISBN10          *string    `json:"isbn10" validate:"omitempty,max=10,isbn10"`
	ISBN13          *string    `json:"isbn13" validate:"omitempty,max=13,isbn13"`
	TypeOfMedia     *string    `json:"typeOfMedia"`
	Genres          []string   `json:"genres" validate:"omitempty,dive,required,max=64"`
}

func (b Book) Apply(p BookPatch) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Pages != nil {
		b.Pages = *p.Pages
	}
	if p.Chapters != nil {
		b.Chapters = p.Chapters
	}
	if p.Synopsis != nil {
		b.Synopsis = p.Synopsis
	}
	if p.Publisher != nil {
		b.Publisher = p.Publisher
	}
	if p.PublicationDate != nil {
		b.PublicationDate = p.PublicationDate
	}
	if p.Language != nil {
		b.Language = p.Language
	}
	if p.ISBN10 != nil {
		b.ISBN10 = p.ISBN10
	}
	if p.ISBN13 != nil {
		b.ISBN13 = p.ISBN13
	}
	if p.TypeOfMedia != nil {
		b.TypeOfMedia = p.TypeOfMedia
	}
	if p.Genres != nil {
		b.Genres = uniqueGenres(p.Genres)
	}
	return b
}

// Sanitize drops blank optional text fields.
func (b Book) Sanitize() Book {
	b.Synopsis = nonBlank(b.Synopsis)
	b.Publisher = nonBlank(b.Publisher)
	b.Language = nonBlank(b.Language)
	b.ISBN10 = nonBlank(b.ISBN10)
	b.ISBN13 = nonBlank(b.ISBN13)
	b.TypeOfMedia = nonBlank(b.TypeOfMedia)
	return b
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func uniqueGenres(in []string) Genres {
	out := make(Genres, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if _, ok := seen[g]; ok || g == "" {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
