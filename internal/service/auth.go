package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/hash"
	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/tokens"
	"github.com/minipos/minipos/internal/validate"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Issuer   *tokens.Issuer
	Producer *events.Producer
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// Signup creates the user but does not log them in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if fe := validate.Signup(name, email, password); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, fe.Error())
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	accessToken, err := s.Issuer.SignAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Issuer.SignRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userId": user.ID,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is left alone; the caller's cookie stays as it is.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	userID, err := s.Issuer.ParseRefresh(rawRefresh)
	if err != nil {
		if errors.Is(err, tokens.ErrExpired) {
			return "", fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
		}
		return "", fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return "", fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return "", err
	}

	return s.Issuer.SignAccess(user.ID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}
