package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = time.Hour
	signingKeyBytes = 32
)

// AuthService registers users and verifies their credentials.
type AuthService struct {
	users      repository.UserStore
	activity   repository.ActivityRepo
	hasher     PasswordHasher
	signingKey []byte
	tokenTTL   time.Duration
}

// NewAuthService builds the auth flows. An empty signingKey is replaced by a
// random one, so issued tokens only live as long as the process.
func NewAuthService(users repository.UserStore, activity repository.ActivityRepo, hasher PasswordHasher, signingKey string, tokenTTL time.Duration) (*AuthService, error) {
	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, signingKeyBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		activity:   activity,
		hasher:     hasher,
		signingKey: key,
		tokenTTL:   tokenTTL,
	}, nil
}

// SignUp hashes password and creates a new user.
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := s.users.Register(ctx, username, hash); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrConflict
		}
		return fmt.Errorf("%w: register %q: %w", ErrInternal, username, err)
	}

	if err := s.activity.Append(ctx, models.ActivityEvent{
		Type:        models.ActivityRegister,
		Username:    username,
		Description: "User registered",
	}); err != nil {
		return fmt.Errorf("%w: record registration of %q: %w", ErrInternal, username, err)
	}
	return nil
}

// Authenticate returns username if password matches its stored hash. An
// unknown user and a wrong password produce the same ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("%w: load user: %w", ErrInternal, err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return "", ErrUnauthorized
	}
	return u.Username, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	verified, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.issueToken(verified)
}

// ParseToken parses JWT and returns the username it was issued for.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrUnauthorized
	}
	return claims.Username, nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", ErrInternal, err)
	}
	return signed, nil
}
