// Package auth, as part of the authentication module.
// This file, `service.go`, contains the business logic for registration, login and
// token handling. Storage is reached through the UserStore interface, so the same
// service runs against MongoDB, PostgreSQL or the in-memory store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	// `bcrypt` is a password hashing function, designed to be slow and resistant to brute-force attacks.
	"golang.org/x/crypto/bcrypt"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/config"
	"github.com/user/blog-go/validation"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenIssuer      = "blog-go"
)

// AuthService provides authentication-related services.
type AuthService struct {
	store      UserStore
	authConfig config.AuthConfig
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, authConfig config.AuthConfig, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		store:      store,
		authConfig: authConfig,
		log:        log,
		now:        time.Now,
	}
}

// CustomClaims represents the JWT claims.
// It embeds `jwt.RegisteredClaims` for standard claims (exp, iat, nbf, iss, sub) and adds
// the user id, the username (so other services don't need a user lookup) and the token type.
type CustomClaims struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	TokenType string `json:"tokenType"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Register handles new user registration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Normalize()
	if details := validation.Struct(req); len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	// `bcrypt.DefaultCost` is a reasonable default for the hashing cost.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return nil, apperror.NewConflictError("username already exists", err)
		case errors.Is(err, ErrDuplicateEmail):
			return nil, apperror.NewConflictError("email already exists", err)
		}
		s.log.WithError(err).Error("failed to create user")
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login handles user login, accepting either a username or an email.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if details := validation.Struct(req); len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	user, err := s.getUserByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same message as a wrong password, so logins can't be used to probe accounts.
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		s.log.WithError(err).Error("failed to look up user for login")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.generateTokens(user)
}

// RefreshToken issues a new access token for a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenResponse, error) {
	claims, err := s.validateToken(refreshTokenString, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError("invalid refresh token", err)
	}

	// The account may have been removed since the refresh token was issued.
	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidUserID) {
			return nil, apperror.NewAuthError("invalid refresh token", err)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	accessToken, _, err := s.generateSpecificToken(user, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate access token", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.authConfig.AccessTokenDuration.Seconds()),
		User:         &UserSummary{ID: user.ID, Username: user.Username},
	}, nil
}

// VerifyAccessToken checks an access token and returns the identity it carries.
func (s *AuthService) VerifyAccessToken(tokenString string) (Identity, error) {
	claims, err := s.validateToken(tokenString, tokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}
	if claims.UserID == "" {
		return Identity{}, errors.New("userId claim is missing")
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// generateTokens creates both access and refresh tokens for a user.
func (s *AuthService) generateTokens(user *User) (*TokenResponse, error) {
	accessToken, _, err := s.generateSpecificToken(user, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate access token", err)
	}

	refreshToken, _, err := s.generateSpecificToken(user, tokenTypeRefresh, s.authConfig.RefreshTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate refresh token", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.authConfig.AccessTokenDuration.Seconds()),
		User:         &UserSummary{ID: user.ID, Username: user.Username},
	}, nil
}

// generateSpecificToken creates a single JWT token of a specific type and duration.
func (s *AuthService) generateSpecificToken(user *User, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := s.now()
	expirationTime := now.Add(duration)
	claims := &CustomClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	// HS256 (HMAC with SHA-256) is a common symmetric signing algorithm.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// validateToken parses and validates a JWT string, checking its signature, expiry,
// issuer and type.
func (s *AuthService) validateToken(tokenString string, expectedTokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only accept HMAC; this blocks "alg: none" and RSA/HMAC confusion.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedTokenType, claims.TokenType)
	}
	return claims, nil
}

// getUserByLogin fetches a user by username or email. Anything containing "@" is
// treated as an email.
func (s *AuthService) getUserByLogin(ctx context.Context, login string) (*User, error) {
	if strings.Contains(login, "@") {
		return s.store.GetUserByEmail(ctx, strings.ToLower(login))
	}
	return s.store.GetUserByUsername(ctx, login)
}
