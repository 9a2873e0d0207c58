package webhook

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims the platform puts in the JWT it signs with the
// app's signing secret.
type Claims struct {
	AccountID       int64  `json:"accountId"`
	UserID          int64  `json:"userId"`
	ShortLivedToken string `json:"shortLivedToken,omitempty"`
	jwt.RegisteredClaims
}

// ValidateAuthorizationHeader checks the header is present and returns the
// raw token with an optional "Bearer " prefix removed.
func ValidateAuthorizationHeader(header string) (string, error) {
	token := strings.TrimSpace(header)
	if token == "" {
		return "", ErrMissingAuthorization
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if strings.Count(token, ".") != 2 {
		return "", fmt.Errorf("%w: expected a JWT", ErrInvalidAuthorization)
	}
	return token, nil
}

// VerifyAuthorization verifies an HS256 JWT signed with secret and returns
// its claims. Expiry is enforced when the token carries an exp claim.
func VerifyAuthorization(header, secret string) (*Claims, error) {
	raw, err := ValidateAuthorizationHeader(header)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAuthorization, err)
	}
	return claims, nil
}

// RequireSignature rejects requests whose Authorization header is not a JWT
// signed with secret. Preflight requests pass through untouched.
func RequireSignature(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := VerifyAuthorization(r.Header.Get("Authorization"), secret)
			if err != nil {
				log.Printf("[Webhook] Signature verification failed for %s: %v", r.URL.Path, err)
				http.Error(w, "Invalid signature", http.StatusUnauthorized)
				return
			}

			log.Printf("[Webhook] Verified request from account %d user %d", claims.AccountID, claims.UserID)
			next.ServeHTTP(w, r)
		})
	}
}
