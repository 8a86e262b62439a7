package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/asc-iap/internal/metrics"
)

// RenewalMargin is how long before expiry a cached token stops being served.
const RenewalMargin = 5 * time.Minute

// TokenCache holds at most one token for an identity and re-signs when it is
// inside the renewal margin. Concurrent callers share a single renewal.
type TokenCache struct {
	identity Identity
	signer   TokenSigner
	margin   time.Duration
	log      *slog.Logger
	nowFunc  func() time.Time // for testing

	mu    sync.Mutex
	token Token

	renew singleflight.Group
}

// CacheOption configures the TokenCache.
type CacheOption func(*TokenCache)

// WithSigner overrides the default ES256 signer.
func WithSigner(s TokenSigner) CacheOption {
	return func(c *TokenCache) {
		c.signer = s
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) CacheOption {
	return func(c *TokenCache) {
		c.nowFunc = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *TokenCache) {
		c.log = l
	}
}

// NewTokenCache validates identity and signs an initial token so malformed
// credentials fail here, before any request is attempted.
func NewTokenCache(identity Identity, opts ...CacheOption) (*TokenCache, error) {
	c := &TokenCache{
		identity: identity,
		signer:   NewSigner(),
		margin:   RenewalMargin,
		log:      slog.Default(),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := identity.Validate(); err != nil {
		return nil, err
	}
	if _, err := c.Current(context.Background()); err != nil {
		return nil, fmt.Errorf("signing initial token: %w", err)
	}
	return c, nil
}

// Token implements asc.TokenProvider.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	tok, err := c.Current(ctx)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// Current returns the cached token, renewing it when now is not before
// ExpiresAt minus the renewal margin.
func (c *TokenCache) Current(ctx context.Context) (Token, error) {
	if err := ctx.Err(); err != nil {
		return Token{}, err
	}

	if tok, ok := c.cached(); ok {
		return tok, nil
	}

	v, err, _ := c.renew.Do("token", func() (any, error) {
		// A flight that finished just before this one may already have renewed.
		if tok, ok := c.cached(); ok {
			return tok, nil
		}

		now := c.nowFunc()
		tok, err := c.signer.Sign(c.identity, now)
		if err != nil {
			return Token{}, err
		}

		c.mu.Lock()
		c.token = tok
		c.mu.Unlock()

		metrics.ASCTokenRenewalsTotal.Inc()
		c.log.Debug("signed new token",
			"key_id", c.identity.KeyID(),
			"expires_at", tok.ExpiresAt,
		)
		return tok, nil
	})
	if err != nil {
		return Token{}, err
	}
	return v.(Token), nil
}

func (c *TokenCache) cached() (Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Value == "" {
		return Token{}, false
	}
	if !c.nowFunc().Before(c.token.ExpiresAt.Add(-c.margin)) {
		return Token{}, false
	}
	return c.token, true
}
