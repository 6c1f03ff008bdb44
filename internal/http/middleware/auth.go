package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
)

// Claims are the identity provider's token claims. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IdentityEnsurer records the authenticated user, creating it on first sight
type IdentityEnsurer interface {
	EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

// AuthConfig verifies HS256 bearer tokens
type AuthConfig struct {
	secret []byte
	issuer string
	users  IdentityEnsurer
	logger logger.Logger
}

// NewAuthMiddleware creates the auth middleware. An empty issuer skips the iss check.
func NewAuthMiddleware(secret, issuer string, users IdentityEnsurer, logger logger.Logger) *AuthConfig {
	return &AuthConfig{
		secret: []byte(secret),
		issuer: issuer,
		users:  users,
		logger: logger,
	}
}

// RequireAuth verifies the token, ensures the user exists and stores the
// identity on the request context
func (ac *AuthConfig) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		identity, err := ac.Verify(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := ac.users.EnsureUser(r.Context(), identity)
		if err != nil {
			switch {
			case domain.IsValidation(err), domain.IsConflict(err):
				writeError(w, http.StatusUnauthorized, err.Error())
			case domain.IsDependencyUnavailable(err):
				writeError(w, http.StatusServiceUnavailable, "Service unavailable")
			default:
				ac.logger.WithField("user_id", identity.UserID).WithField("error", err.Error()).Error("Failed to ensure user")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		identity.Email = user.Email

		next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), identity)))
	})
}

// Verify parses a token and returns the identity it asserts
func (ac *AuthConfig) Verify(token string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if ac.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ac.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ac.secret, nil
	}, opts...)
	if err != nil {
		return domain.Identity{}, err
	}
	if claims.Subject == "" || claims.Email == "" {
		return domain.Identity{}, errors.New("token is missing the subject or email claim")
	}
	return domain.Identity{UserID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// IssueToken signs a token the way the identity provider does. Used by the
// admin CLI and tests.
func IssueToken(secret, issuer, userID, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
