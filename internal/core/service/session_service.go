package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martijn/todolist/internal/core/domain"
	"github.com/martijn/todolist/internal/core/repository"
)

const DefaultSessionLifetime = 24 * time.Hour

type SessionService struct {
	sessionRepo  repository.SessionRepository
	userRepo     repository.UserRepository
	jwtSecret    string
	jwtAlgorithm string
	lifetime     time.Duration
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	jwtSecret string,
	jwtAlgorithm string,
	lifetime time.Duration,
) *SessionService {
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	return &SessionService{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		lifetime:     lifetime,
	}
}

// Lifetime is how long a session stays valid after login.
func (s *SessionService) Lifetime() time.Duration {
	return s.lifetime
}

// Login opens a session for user and returns the signed cookie token.
func (s *SessionService) Login(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	// Clean up expired sessions
	_ = s.sessionRepo.DeleteExpired(ctx)

	session := domain.NewSession(user.ID, s.lifetime)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.generateJWT(session)
	if err != nil {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return "", nil, err
	}

	return token, session, nil
}

// Logout ends the session referenced by token. An empty, malformed or
// already-ended token is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	return s.sessionRepo.Delete(ctx, claims.SessionID)
}

// CurrentUser resolves token to its principal. A nil user with a nil error
// means the request is anonymous; errors are reserved for store failures.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, nil
	}
	if session.UserID != claims.UserID {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	return s.parse(tokenString)
}

func (s *SessionService) parse(tokenString string, opts ...jwt.ParserOption) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.signingMethod().Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, opts...)

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// generateJWT signs the session reference carried by the cookie
func (s *SessionService) generateJWT(session *domain.Session) (string, error) {
	claims := SessionClaims{
		SessionID: session.ID,
		UserID:    session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(session.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
			Issuer:    "todolist",
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *SessionService) signingMethod() jwt.SigningMethod {
	switch s.jwtAlgorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// SessionClaims is the payload of the session cookie
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    int64  `json:"uid"`
	jwt.RegisteredClaims
}
