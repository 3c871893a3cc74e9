package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type authStudentRepository interface {
	All(ctx context.Context) []models.User
	First(ctx context.Context) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type authSessionRepository interface {
	Get(ctx context.Context) (*models.Session, error)
	Put(ctx context.Context, session models.Session)
	Clear(ctx context.Context)
}

// AuthConfig defines configuration for the authentication flow.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService resolves the credential pair against the static admin record
// and the student collection, and manages the single persisted session.
type AuthService struct {
	students  authStudentRepository
	sessions  authSessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, sessions authSessionRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{students: students, sessions: sessions, validator: validate, logger: logger, config: config}
}

// Login evaluates the credential rules in priority order:
//  1. the literal "admin" with the admin password,
//  2. the literal "student" with the default student password, resolving
//     to the first student in collection order,
//  3. a case-insensitive email or name match with an exact password match.
//
// On success the identity is persisted as the current session user.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	admin := models.AdminUser()

	var user *models.User
	switch {
	case identifier == "admin" && req.Password == admin.Password:
		user = &admin
	case identifier == "student" && req.Password == models.DefaultStudentPassword:
		first, err := s.students.First(ctx)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "no students registered yet")
		}
		user = first
	default:
		for _, candidate := range s.students.All(ctx) {
			if (strings.EqualFold(candidate.Email, identifier) || strings.EqualFold(candidate.Name, identifier)) &&
				candidate.Password == req.Password {
				match := candidate
				user = &match
				break
			}
		}
	}

	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid login or password")
	}

	s.sessions.Put(ctx, models.Session{UserID: user.ID, Role: user.Role, LoginAt: time.Now().UnixMilli()})

	token, expiresAt, err := s.generateAccessToken(*user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		IssuedAt:    time.Now().UTC(),
		User:        user.Public(),
	}, nil
}

// Logout clears the persisted session slot.
func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.Clear(ctx)
}

// CurrentUser re-resolves the persisted session against the current
// student collection so profile edits show up without a fresh login.
// The admin always resolves to the static record; a deleted student
// invalidates the session.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}
	if session.Role == models.RoleAdmin {
		admin := models.AdminUser()
		return &admin, nil
	}
	user, err := s.students.FindByID(ctx, session.UserID)
	if err != nil {
		s.sessions.Clear(ctx)
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session user no longer exists")
	}
	return user, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(user models.User) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
