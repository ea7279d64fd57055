package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "alice@example.com", "Alice", "client", "secret", 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "alice@example.com" || claims.FullName != "Alice" || claims.Role != "client" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "7" {
		t.Fatalf("subject = %q, want 7", claims.Subject)
	}
}

func TestValidateAccessTokenErrors(t *testing.T) {
	valid, _ := GenerateAccessToken(1, "a@b.c", "A", "admin", "secret", 15)

	expiredClaims := Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    issuer,
		},
	}
	expired, _ := gojwt.NewWithClaims(gojwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))

	foreignClaims := Claims{
		UserID: 1,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
			Issuer:    "someone-else",
		},
	}
	foreign, _ := gojwt.NewWithClaims(gojwt.SigningMethodHS256, foreignClaims).SignedString([]byte("secret"))

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"wrong secret", valid, "other", ErrTokenInvalid},
		{"expired", expired, "secret", ErrTokenExpired},
		{"garbage", "not-a-token", "secret", ErrTokenInvalid},
		{"foreign issuer", foreign, "secret", ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tt.token, tt.secret)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	refresh, err := GenerateRefreshToken(3, "tid", "refresh-secret", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateAccessToken(refresh, "access-secret"); err == nil {
		t.Fatal("refresh token accepted with the access secret")
	}

	claims, err := ValidateRefreshToken(refresh, "refresh-secret")
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if claims.UserID != 3 || claims.TokenID != "tid" {
		t.Fatalf("unexpected refresh claims: %+v", claims)
	}
}
