package oauth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Token is the bearer credential presented to the catalog API.
type Token struct {
	AccessToken string
	FetchedAt   time.Time
}

// TokenSource returns a valid token.
// It is safe for concurrent use by multiple goroutines.
type TokenSource interface {
	Token(context.Context) (*Token, error)
	ForceRefresh(context.Context) (*Token, error)
}

// SecretGetter is the slice of the secret store a SecretTokenSource needs.
type SecretGetter interface {
	GetSecret(ctx context.Context, projectID, name string) (string, error)
}

// SecretTokenSource reads the API token from the secret store and keeps it
// until the API rejects it.
type SecretTokenSource struct {
	secrets   SecretGetter
	projectID string
	name      string

	mu     sync.Mutex
	cached *Token
}

func NewSecretTokenSource(secrets SecretGetter, projectID, name string) *SecretTokenSource {
	return &SecretTokenSource{
		secrets:   secrets,
		projectID: projectID,
		name:      name,
	}
}

// Token returns the cached token, reading the secret on first use.
func (s *SecretTokenSource) Token(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}
	return s.fetch(ctx)
}

// ForceRefresh drops the cached token and re-reads the secret. Used after
// a 401, when the secret may have been rotated.
func (s *SecretTokenSource) ForceRefresh(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	return s.fetch(ctx)
}

// fetch must be called with mu held.
func (s *SecretTokenSource) fetch(ctx context.Context) (*Token, error) {
	value, err := s.secrets.GetSecret(ctx, s.projectID, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s: %w", s.name, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("secret %s is empty", s.name)
	}

	slog.Debug("Loaded API token from secret store", "secret", s.name)
	s.cached = &Token{AccessToken: value, FetchedAt: time.Now()}
	return s.cached, nil
}

// StaticTokenSource always returns the same token. An empty token makes
// the Transport send unauthenticated requests.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (*Token, error) {
	return &Token{AccessToken: string(s)}, nil
}

func (s StaticTokenSource) ForceRefresh(ctx context.Context) (*Token, error) {
	return s.Token(ctx)
}
