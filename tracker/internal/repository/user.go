package repository

import (
	"context"
	"strings"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "role", "profile_image", "is_active", "created_at", "updated_at",
}

func (r *repository) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("id", "username", "email", "password_hash", "role", "is_active").
		Values(u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive).
		Suffix("returning " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var created model.User
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		return model.User{}, mapErr(err, "CreateUser")
	}
	return created, nil
}

func (r *repository) GetUser(ctx context.Context, id string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"username": username})
}

func (r *repository) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		return model.User{}, mapErr(err, "GetUser")
	}
	return u, nil
}

func (r *repository) UpdateProfileImage(ctx context.Context, id, url string) error {
	query, args, err := qb.Update(usersTableName).
		Set("profile_image", url).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "UpdateProfileImage")
	}
	return affected(res, "UpdateProfileImage")
}

func (r *repository) SaveRefreshToken(ctx context.Context, t model.RefreshToken) error {
	query, args, err := qb.Insert(refreshTokensTableName).
		Columns("user_id", "token_hash", "issued_at", "expires_at").
		Values(t.UserID, t.TokenHash, t.IssuedAt, t.ExpiresAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapErr(err, "SaveRefreshToken")
	}
	return nil
}

func (r *repository) GetRefreshToken(ctx context.Context, hash string) (model.RefreshToken, error) {
	query, args, err := qb.Select("id", "user_id", "token_hash", "issued_at", "expires_at", "revoked").
		From(refreshTokensTableName).
		Where(sq.Eq{"token_hash": hash}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.RefreshToken{}, err
	}

	var t model.RefreshToken
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		return model.RefreshToken{}, mapErr(err, "GetRefreshToken")
	}
	return t, nil
}

func (r *repository) RevokeRefreshToken(ctx context.Context, hash string) error {
	query, args, err := qb.Update(refreshTokensTableName).
		Set("revoked", true).
		Where(sq.Eq{"token_hash": hash, "revoked": false}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "RevokeRefreshToken")
	}
	return affected(res, "RevokeRefreshToken")
}
