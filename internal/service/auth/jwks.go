package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Defaults for JWKSCache.
const (
	DefaultJWKSCacheTTL        = 10 * time.Minute
	DefaultJWKSRefreshInterval = 30 * time.Second

	jwksFetchTimeout = 10 * time.Second
	maxJWKSBodyBytes = 1 << 20
	minRSAKeyBits    = 2048
)

// KeySource resolves a token's kid to an RSA public key.
type KeySource interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// JWKSCache fetches and caches the RSA signing keys published at a JWKS
// endpoint. After the first fetch, refetches (TTL expiry or an unknown kid)
// happen at most once per refresh interval. Concurrent refetches share one
// request.
type JWKSCache struct {
	url     string
	client  *http.Client
	ttl     time.Duration
	limiter *rate.Limiter
	now     func() time.Time
	logger  *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// Ensure JWKSCache implements KeySource interface
var _ KeySource = (*JWKSCache)(nil)

// JWKSOption configures a JWKSCache.
type JWKSOption func(*JWKSCache)

// WithHTTPClient overrides the pooled cleanhttp client.
func WithHTTPClient(client *http.Client) JWKSOption {
	return func(c *JWKSCache) { c.client = client }
}

// WithCacheTTL sets how long fetched keys are trusted without a refresh.
func WithCacheTTL(ttl time.Duration) JWKSOption {
	return func(c *JWKSCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRefreshInterval bounds how often the endpoint is refetched.
func WithRefreshInterval(interval time.Duration) JWKSOption {
	return func(c *JWKSCache) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithClock injects the time source used for TTL checks.
func WithClock(now func() time.Time) JWKSOption {
	return func(c *JWKSCache) { c.now = now }
}

// WithJWKSLogger sets the logger used for refresh diagnostics.
func WithJWKSLogger(log *slog.Logger) JWKSOption {
	return func(c *JWKSCache) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewJWKSCache creates a cache for the key set at url. Nothing is fetched
// until the first Key call.
func NewJWKSCache(url string, opts ...JWKSOption) *JWKSCache {
	c := &JWKSCache{
		url:     url,
		client:  cleanhttp.DefaultPooledClient(),
		ttl:     DefaultJWKSCacheTTL,
		limiter: rate.NewLimiter(rate.Every(DefaultJWKSRefreshInterval), 1),
		now:     time.Now,
		logger:  slog.Default(),
		keys:    make(map[string]*rsa.PublicKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "jwks_cache"))
	return c
}

// Key implements KeySource.Key
func (c *JWKSCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.mu.RLock()
	key, known := c.keys[kid]
	seen := c.fetchedAt
	fresh := !seen.IsZero() && c.now().Sub(seen) < c.ttl
	c.mu.RUnlock()

	if known && fresh {
		return key, nil
	}

	if !seen.IsZero() && !c.limiter.AllowN(c.now(), 1) {
		if known {
			log.Debug("jwks refresh rate limited, serving cached key", slog.String("kid", kid))
			return key, nil
		}
		log.Debug("unknown kid and refetch rate limited", slog.String("kid", kid))
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, kid)
	}

	if err := c.refresh(ctx, seen); err != nil {
		if known {
			log.Warn("jwks refresh failed, serving cached key",
				slog.String("kid", kid),
				slog.String("error", err.Error()))
			return key, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}

	c.mu.RLock()
	key, known = c.keys[kid]
	c.mu.RUnlock()
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, kid)
	}
	return key, nil
}

// refresh fetches the key set once for all concurrent callers. seen is the
// fetch time the caller observed; if another refresh landed since, nothing is
// fetched. The fetch is detached from any single caller's cancellation; each
// caller still stops waiting when its own context ends.
func (c *JWKSCache) refresh(ctx context.Context, seen time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := c.group.DoChan("jwks", func() (any, error) {
		c.mu.RLock()
		refreshed := !c.fetchedAt.Equal(seen)
		c.mu.RUnlock()
		if refreshed {
			return nil, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jwksFetchTimeout)
		defer cancel()

		keys, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.keys = keys
		c.fetchedAt = c.now()
		c.mu.Unlock()

		c.logger.Debug("jwks refreshed", slog.Int("keys", len(keys)))
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *JWKSCache) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jwks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var set struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJWKSBodyBytes)).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, raw := range set.Keys {
		var jwk jose.JSONWebKey
		if err := jwk.UnmarshalJSON(raw); err != nil {
			c.logger.Debug("skipping undecodable jwk", slog.String("error", err.Error()))
			continue
		}
		key, err := signingKey(jwk)
		if err != nil {
			c.logger.Debug("skipping jwk",
				slog.String("kid", jwk.KeyID),
				slog.String("error", err.Error()))
			continue
		}
		keys[jwk.KeyID] = key
	}

	if len(keys) == 0 {
		return nil, errors.New("jwks contains no usable RSA signing keys")
	}
	return keys, nil
}

// signingKey accepts only public RS256 signature keys with a kid and a
// modulus of at least minRSAKeyBits.
func signingKey(jwk jose.JSONWebKey) (*rsa.PublicKey, error) {
	if jwk.KeyID == "" {
		return nil, errors.New("missing kid")
	}
	if jwk.Use != "" && jwk.Use != "sig" {
		return nil, fmt.Errorf("use %q is not sig", jwk.Use)
	}
	if jwk.Algorithm != "" && jwk.Algorithm != string(jose.RS256) {
		return nil, fmt.Errorf("alg %q is not RS256", jwk.Algorithm)
	}
	if !jwk.Valid() || !jwk.IsPublic() {
		return nil, errors.New("not a valid public key")
	}
	pub, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key type %T is not RSA", jwk.Key)
	}
	if bits := pub.N.BitLen(); bits < minRSAKeyBits {
		return nil, fmt.Errorf("rsa modulus of %d bits is below %d", bits, minRSAKeyBits)
	}
	return pub, nil
}
