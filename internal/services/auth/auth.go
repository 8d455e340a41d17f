// Package services содержит бизнес-логику регистрации и аутентификации
// пользователей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/education-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/education-platform/internal/lib/password"
	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolationCode = "23505"

// Ошибки бизнес-логики аутентификации.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

// TokenPair содержит пару токенов, выдаваемую при входе и обновлении.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// RegisterUser добавляет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userUID string) error
}

// TokenCache хранит отозванные refresh-токены.
type TokenCache interface {
	Revoke(jti string, ttl time.Duration) error
	IsRevoked(jti string) (bool, error)
}

// Publisher публикует события уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// AuthService реализует регистрацию, вход и обновление токенов.
type AuthService struct {
	repo      UserRepository
	maker     jwt.Maker
	cache     TokenCache
	publisher Publisher
	log       *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo UserRepository, maker jwt.Maker, cache TokenCache,
	publisher Publisher, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		maker:     maker,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Register регистрирует нового пользователя и возвращает его UID вместе
// с парой токенов: после регистрации пользователь сразу аутентифицирован.
// Повторная регистрация на занятый email возвращает ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, *TokenPair, error) {
	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", nil, err
	}

	user := models.User{
		Email:        req.Email,
		Phone:        optional(req.Phone),
		City:         optional(req.City),
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	uid, err := s.repo.RegisterUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	s.log.Info("registered new user", slog.String("uid", uid))

	tokens, err := s.issueTokens(&models.User{UID: uid, Email: req.Email, Role: models.RoleUser})
	if err != nil {
		return "", nil, err
	}

	event := models.UserWelcomeEvent{Email: req.Email}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyUserWelcome, event); err != nil {
		s.log.Warn("failed to publish user welcome event",
			slog.String("uid", uid), slog.Any("err", err))
	}
	return uid, tokens, nil
}

// Login проверяет учетные данные и возвращает пару токенов.
// Заблокированные пользователи войти не могут.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserBlocked
	}

	if err := s.repo.UpdateLastLogin(ctx, user.UID); err != nil {
		s.log.Warn("failed to update last login",
			slog.String("uid", user.UID), slog.Any("err", err))
	}
	return s.issueTokens(user)
}

// Refresh обменивает действительный refresh-токен на новую пару токенов.
// Использованный токен отзывается: повторное предъявление отклоняется.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.maker.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	revoked, err := s.cache.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := s.cache.Revoke(claims.ID, ttl); err != nil {
				return nil, err
			}
		}
	}

	user := &models.User{
		UID:   claims.UserUID,
		Email: claims.Email,
		Role:  claims.Role,
	}
	return s.issueTokens(user)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := s.maker.GenerateAccessToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.maker.GenerateRefreshToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
