package auth_test

import (
	"context"
	"crypto/elliptic"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/asc-iap/internal/auth"
)

// countingSigner wraps the real signer and counts Sign calls.
type countingSigner struct {
	inner *auth.Signer
	calls atomic.Int32
	delay time.Duration
}

func (s *countingSigner) Sign(id auth.Identity, issuedAt time.Time) (auth.Token, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.inner.Sign(id, issuedAt)
}

// fakeClock is a mutex-guarded settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestIdentity(t *testing.T) auth.Identity {
	t.Helper()
	keyPEM, _ := newKeyPEM(t, elliptic.P256())
	return auth.NewIdentity(testKeyID, testIssuerID, keyPEM)
}

func TestNewTokenCache_InvalidIdentity(t *testing.T) {
	t.Parallel()

	signer := &countingSigner{inner: auth.NewSigner()}
	_, err := auth.NewTokenCache(
		auth.NewIdentity("bad", testIssuerID, "irrelevant"),
		auth.WithSigner(signer),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrValidation)
	assert.Equal(t, int32(0), signer.calls.Load())
}

func TestNewTokenCache_SignsInitialToken(t *testing.T) {
	t.Parallel()

	signer := &countingSigner{inner: auth.NewSigner()}
	cache, err := auth.NewTokenCache(newTestIdentity(t), auth.WithSigner(signer))
	require.NoError(t, err)
	assert.Equal(t, int32(1), signer.calls.Load())

	tok, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, int32(1), signer.calls.Load())
}

func TestTokenCache_RenewalMargin(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: t0}
	signer := &countingSigner{inner: auth.NewSigner()}

	cache, err := auth.NewTokenCache(newTestIdentity(t),
		auth.WithSigner(signer),
		auth.WithNowFunc(clock.Now),
	)
	require.NoError(t, err)

	first, err := cache.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, t0.Add(20*time.Minute), first.ExpiresAt.UTC())

	// now such that the cached token expires in 400s.
	now := t0.Add(800 * time.Second)

	clock.Set(now.Add(50 * time.Second))
	got, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, got)
	assert.Equal(t, int32(1), signer.calls.Load())

	clock.Set(now.Add(99 * time.Second))
	got, err = cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Value, got.Value)
	assert.Equal(t, int32(1), signer.calls.Load())

	clock.Set(now.Add(1100 * time.Second))
	renewed, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Value, renewed.Value)
	assert.Equal(t, int32(2), signer.calls.Load())
	assert.Equal(t, now.Add(1100*time.Second+20*time.Minute), renewed.ExpiresAt.UTC())
}

func TestTokenCache_RenewsExactlyAtMargin(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: t0}
	signer := &countingSigner{inner: auth.NewSigner()}

	cache, err := auth.NewTokenCache(newTestIdentity(t),
		auth.WithSigner(signer),
		auth.WithNowFunc(clock.Now),
	)
	require.NoError(t, err)

	// ExpiresAt - 300s is the first instant that is no longer served.
	clock.Set(t0.Add(899 * time.Second))
	_, err = cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), signer.calls.Load())

	clock.Set(t0.Add(900 * time.Second))
	_, err = cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), signer.calls.Load())
}

func TestTokenCache_ConcurrentRenewal(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: t0}
	signer := &countingSigner{inner: auth.NewSigner()}

	cache, err := auth.NewTokenCache(newTestIdentity(t),
		auth.WithSigner(signer),
		auth.WithNowFunc(clock.Now),
	)
	require.NoError(t, err)

	signer.delay = 20 * time.Millisecond
	clock.Set(t0.Add(time.Hour))

	const goroutines = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)

	values := make([]string, goroutines)
	for i := range goroutines {
		go func() {
			defer wg.Done()
			tok, err := cache.Token(context.Background())
			assert.NoError(t, err)
			values[i] = tok
		}()
	}

	wg.Wait()

	// One initial sign plus one renewal for the whole expiry cycle.
	assert.Equal(t, int32(2), signer.calls.Load())
	for i := 1; i < goroutines; i++ {
		assert.Equal(t, values[0], values[i])
	}
}

func TestTokenCache_CanceledContext(t *testing.T) {
	t.Parallel()

	cache, err := auth.NewTokenCache(newTestIdentity(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cache.Token(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
