// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines HTTP middleware related to authentication.
// Middleware are functions that process HTTP requests before they reach the main handler.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/blog-go/apperror"
)

// TokenVerifier turns an access token into an Identity. *AuthService implements it.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (Identity, error)
}

var errNoToken = errors.New("no bearer token")

// bearerToken extracts the token from an "Authorization: Bearer {token}" header.
// errNoToken means the header was absent.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("Authorization header format must be Bearer {token}")
	}
	return parts[1], nil
}

// JWTMiddleware requires a valid access token and stores the caller's Identity in the
// request context. It conforms to the standard `func(next http.Handler) http.Handler`
// shape so it plugs into chi's `r.With(...)` / `r.Use(...)`.
func JWTMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if errors.Is(err, errNoToken) {
				apperror.WriteError(w, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}
			if err != nil {
				apperror.WriteError(w, apperror.NewAuthError(err.Error(), nil))
				return
			}

			id, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					apperror.WriteError(w, apperror.NewAuthError("Token has expired", err))
					return
				}
				apperror.WriteError(w, apperror.NewAuthError("Invalid token", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithIdentity(r.Context(), id)))
		})
	}
}

// OptionalJWTMiddleware attaches an Identity when a valid access token is present and
// otherwise lets the request through untouched. Used by endpoints that accept anonymous
// callers but fill in defaults for signed-in ones.
func OptionalJWTMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			id, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithIdentity(r.Context(), id)))
		})
	}
}
