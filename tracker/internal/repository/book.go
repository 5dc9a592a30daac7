package repository

import (
	"context"
	"strings"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var bookColumns = []string{
	"id", "title", "author", "pages", "chapters", "cover_url", "user_id", "synopsis", "publisher",
	"publication_date", "language", "isbn10", "isbn13", "type_of_media", "genres", "created_at", "updated_at",
}

var bookSortColumns = map[string]string{
	"":          "updated_at",
	"updatedAt": "updated_at",
	"createdAt": "created_at",
	"title":     "title",
	"author":    "author",
	"pages":     "pages",
}

func (r *repository) CreateBook(ctx context.Context, b model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "pages", "chapters", "cover_url", "user_id", "synopsis", "publisher",
			"publication_date", "language", "isbn10", "isbn13", "type_of_media", "genres").
		Values(b.Title, b.Author, b.Pages, b.Chapters, b.CoverURL, b.UserID, b.Synopsis, b.Publisher,
			b.PublicationDate, b.Language, b.ISBN10, b.ISBN13, b.TypeOfMedia, b.Genres).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Error(err))
		return model.Book{}, mapErr(err, "CreateBook")
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		return model.Book{}, mapErr(err, "GetBook")
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, bq model.BookQuery) (model.ListBooks, error) {
	column, ok := bookSortColumns[bq.Sort]
	if !ok {
		return model.ListBooks{}, errors.Errorf("unknown sort field %q", bq.Sort)
	}
	dir := model.DirectionDesc
	if strings.EqualFold(string(bq.Direction), string(model.DirectionAsc)) {
		dir = model.DirectionAsc
	}

	q := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy(column+" "+string(dir), "id")
	if bq.Page != 0 && bq.Size != 0 {
		q = q.Limit(uint64(bq.Size)).Offset(uint64((bq.Page - 1) * bq.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var (
		books = make([]model.Book, 0)
		total int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.SelectContext(gCtx, &books, query, args...); err != nil {
			return mapErr(err, "ListBooks")
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.GetContext(gCtx, &total, "select count(*) from "+booksTableName); err != nil {
			return mapErr(err, "ListBooks count")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          bq.Page,
			PageSize:      bq.Size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) UpdateBook(ctx context.Context, b model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"title":            b.Title,
			"author":           b.Author,
			"pages":            b.Pages,
			"chapters":         b.Chapters,
			"cover_url":        b.CoverURL,
			"synopsis":         b.Synopsis,
			"publisher":        b.Publisher,
			"publication_date": b.PublicationDate,
			"language":         b.Language,
			"isbn10":           b.ISBN10,
			"isbn13":           b.ISBN13,
			"type_of_media":    b.TypeOfMedia,
			"genres":           b.Genres,
			"updated_at":       sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": b.ID}).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		return model.Book{}, mapErr(err, "UpdateBook")
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(booksTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "DeleteBook")
	}
	return affected(res, "DeleteBook")
}
