// Package auth отвечает за регистрацию пользователей и выдачу JWT.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/password"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	clock    clock.Clock
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр Service.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		clock:    clk,
		log:      log,
	}
}

// Register создает пользователя с хэшированным паролем. Пробный период начинается сразу.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.NewTrialUser(email, username, hashed, s.clock.Now())
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_uid", uid), slog.Time("trial_end", user.TrialEnd))
	return uid, nil
}

// Login проверяет пароль пользователя и выдаёт JWT.
// Неизвестный пользователь и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя из claims.
// UID в claims должен быть корректным UUID.
func (s *Service) ValidateToken(token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := uuid.Parse(claims.UserUID); err != nil {
		return nil, fmt.Errorf("%s: invalid user uid: %w", op, err)
	}
	return claims, nil
}
