package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

func (s *Service) Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	u, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}
	if !u.IsActive {
		return model.AuthResponse{}, errs.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrInvalidCredentials
	}
	s.log.Info("login", zap.String("user_id", u.ID))
	return s.issuePair(ctx, u)
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is revoked.
func (s *Service) Refresh(ctx context.Context, req model.RefreshRequest) (model.AuthResponse, error) {
	p, err := s.tokens.Parse(req.RefreshToken, auth.RefreshToken)
	if err != nil {
		return model.AuthResponse{}, errs.ErrInvalidToken
	}
	hash := hashToken(req.RefreshToken)
	stored, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidToken
		}
		return model.AuthResponse{}, err
	}
	if stored.Revoked || stored.UserID != p.UserID || !stored.ExpiresAt.After(s.now()) {
		return model.AuthResponse{}, errs.ErrInvalidToken
	}

	u, err := s.repo.GetUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidToken
		}
		return model.AuthResponse{}, err
	}
	if !u.IsActive {
		return model.AuthResponse{}, errs.ErrInvalidToken
	}
	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidToken
		}
		return model.AuthResponse{}, err
	}
	return s.issuePair(ctx, u)
}

func (s *Service) issuePair(ctx context.Context, u model.User) (model.AuthResponse, error) {
	p := u.Principal()
	access, accessExp, err := s.tokens.Issue(p, auth.AccessToken)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "issue access token")
	}
	refresh, refreshExp, err := s.tokens.Issue(p, auth.RefreshToken)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "issue refresh token")
	}
	now := s.now()
	if err := s.repo.SaveRefreshToken(ctx, model.RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken(refresh),
		IssuedAt:  now.UTC(),
		ExpiresAt: refreshExp.UTC(),
	}); err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(accessExp.Sub(now).Seconds()),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
