package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors for bearer token resolution.
var (
	ErrTokenMalformed = errors.New("identity: token malformed")
	ErrTokenExpired   = errors.New("identity: token expired")
	ErrTokenInvalid   = errors.New("identity: token invalid")
)

// ResolverConfig configures the bearer token resolver.
type ResolverConfig struct {
	// Secret is the HMAC key shared with the session issuer.
	Secret []byte

	// Issuer is the expected iss claim. Empty skips the check.
	Issuer string

	// PrincipalClaim is the claim containing the user id.
	// Default: "sub"
	PrincipalClaim string
}

// Resolver turns bearer tokens minted by the external auth service into
// caller identities.
type Resolver struct {
	config ResolverConfig
}

// NewResolver creates a bearer token resolver.
func NewResolver(config ResolverConfig) *Resolver {
	if config.PrincipalClaim == "" {
		config.PrincipalClaim = "sub"
	}
	return &Resolver{config: config}
}

// Resolve validates a raw bearer token and returns the caller identity.
func (r *Resolver) Resolve(tokenString string) (*Identity, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if r.config.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(r.config.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return r.config.Secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	principal, _ := claims[r.config.PrincipalClaim].(string)
	if principal == "" {
		return nil, ErrTokenInvalid
	}

	return &Identity{Principal: principal, Method: MethodBearer}, nil
}

// ResolveRequest resolves the identity of an HTTP request.
//
// A missing Authorization header yields the anonymous identity with no
// error; a present-but-invalid token yields anonymous plus the error,
// so callers can choose to reject or rate-limit by IP instead.
func (r *Resolver) ResolveRequest(req *http.Request) (*Identity, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return Anonymous(), nil
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || strings.TrimSpace(tokenString) == "" {
		return Anonymous(), ErrTokenMalformed
	}

	id, err := r.Resolve(strings.TrimSpace(tokenString))
	if err != nil {
		return Anonymous(), err
	}
	return id, nil
}
