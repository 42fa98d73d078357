package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by clipper tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service validates bearer tokens. HS256 tokens are checked against the
// shared secret, ES256 tokens against the configured JWKS endpoint.
type Service struct {
	secret       []byte
	issuer       string
	jwks         *keySet
	devAuthToken string
	now          func() time.Time
}

// Option is a functional option for configuring the auth service
type Option func(*Service)

// WithJWKS enables ES256 validation against keys published at url
func WithJWKS(url string, client *http.Client) Option {
	return func(s *Service) {
		if url != "" {
			s.jwks = newKeySet(url, client)
		}
	}
}

// WithIssuer requires tokens to carry the given iss claim
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithDevAuth accepts token verbatim as the development identity
func WithDevAuth(token string) Option {
	return func(s *Service) {
		s.devAuthToken = token
	}
}

// NewService creates an auth service. At least one of secret and JWKS must
// be configured. The JWKS is fetched once up front so a bad URL fails fast.
func NewService(ctx context.Context, secret string, opts ...Option) (*Service, error) {
	s := &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.secret) == 0 && s.jwks == nil {
		return nil, errors.New("either a JWT secret or a JWKS URL is required")
	}

	if s.jwks != nil {
		if err := s.jwks.fetch(ctx); err != nil {
			return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
		}
	}

	return s, nil
}

// SkipAuthToken configured as the dev token disables header checks entirely
const SkipAuthToken = "SKIP_AUTH"

// DevAuthEnabled reports whether a development token is configured
func (s *Service) DevAuthEnabled() bool {
	return s.devAuthToken != ""
}

// SkipAuth reports whether every request runs as DevIdentity
func (s *Service) SkipAuth() bool {
	return s.devAuthToken == SkipAuthToken
}

// Authenticate resolves a bearer token to an identity
func (s *Service) Authenticate(ctx context.Context, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrUnauthenticated
	}

	if s.devAuthToken != "" &&
		subtle.ConstantTimeCompare([]byte(tokenString), []byte(s.devAuthToken)) == 1 {
		return DevIdentity, nil
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodES256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(s.secret) == 0 {
				return nil, errors.New("HS256 tokens are not accepted")
			}
			return s.secret, nil
		case *jwt.SigningMethodECDSA:
			if s.jwks == nil {
				return nil, errors.New("ES256 tokens are not accepted")
			}
			kid, ok := token.Header["kid"].(string)
			if !ok {
				return nil, errors.New("no kid found in token header")
			}
			return s.jwks.key(ctx, kid)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: claims.Subject, Role: ParseRole(claims.Role)}, nil
}

// IssueToken mints an HS256 token for subject, used by the token command
// and tests
func (s *Service) IssueToken(subject string, role Role, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("cannot issue tokens without a JWT secret")
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := s.now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
