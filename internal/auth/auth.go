package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("username atau password salah")
	ErrNoSession      = errors.New("session not found or expired")
)

// Admin is the single back-office account. PasswordHash is a bcrypt hash.
type Admin struct {
	Username     string
	PasswordHash string
}

func (a Admin) Check(username, password string) error {
	if a.Username == "" || a.PasswordHash == "" {
		return ErrBadCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	// tetap jalankan bcrypt walau username salah supaya timing sama
	passErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return ErrBadCredentials
	}
	return nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Sessions struct {
	Redis *redis.Client
	TTL   time.Duration
}

func (s *Sessions) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeyAdminSession, token)
	if err := s.Redis.Set(ctx, key, username, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *Sessions) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}
	user, err := s.Redis.Get(ctx, fmt.Sprintf(redisx.KeyAdminSession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return user, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyAdminSession, token)).Err()
}
