package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"` // Key type
	Kid string `json:"kid"` // Key ID
	Use string `json:"use"` // Public key use
	Alg string `json:"alg"` // Algorithm
	Crv string `json:"crv"` // Curve (for EC keys)
	X   string `json:"x"`   // X coordinate (for EC keys)
	Y   string `json:"y"`   // Y coordinate (for EC keys)
}

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// keySet caches the ES256 keys published at a JWKS endpoint
type keySet struct {
	url           string
	client        *http.Client
	keys          map[string]*ecdsa.PublicKey
	mu            sync.RWMutex
	lastFetch     time.Time
	cacheDuration time.Duration
}

func newKeySet(url string, client *http.Client) *keySet {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &keySet{
		url:           url,
		client:        client,
		keys:          make(map[string]*ecdsa.PublicKey),
		cacheDuration: time.Hour,
	}
}

func (k *keySet) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJWKSFetch, err)
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJWKSFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: endpoint returned status %d", ErrJWKSFetch, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("%w: failed to decode: %v", ErrJWKSFetch, err)
	}

	keys := make(map[string]*ecdsa.PublicKey)
	for _, jwk := range jwks.Keys {
		if jwk.Kty != "EC" || jwk.Alg != "ES256" {
			continue
		}
		pub, err := parseECKey(jwk)
		if err != nil {
			continue
		}
		keys[jwk.Kid] = pub
	}

	k.mu.Lock()
	k.keys = keys
	k.lastFetch = time.Now()
	k.mu.Unlock()
	return nil
}

// key returns the public key for kid, refreshing the set when the key is
// unknown or the cache is stale
func (k *keySet) key(ctx context.Context, kid string) (*ecdsa.PublicKey, error) {
	k.mu.RLock()
	pub, ok := k.keys[kid]
	stale := time.Since(k.lastFetch) > k.cacheDuration
	k.mu.RUnlock()

	if !ok || stale {
		if err := k.fetch(ctx); err != nil {
			return nil, err
		}
		k.mu.RLock()
		pub, ok = k.keys[kid]
		k.mu.RUnlock()
	}

	if !ok {
		return nil, fmt.Errorf("key with id %s not found", kid)
	}
	return pub, nil
}

func parseECKey(jwk JWK) (*ecdsa.PublicKey, error) {
	xBytes, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode X coordinate: %w", err)
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Y coordinate: %w", err)
	}

	pub := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}
	if !pub.Curve.IsOnCurve(pub.X, pub.Y) {
		return nil, fmt.Errorf("key %s is not on P-256", jwk.Kid)
	}
	return pub, nil
}
