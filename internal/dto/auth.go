package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims is the JWT payload issued after a Google login. TokenType
// distinguishes access tokens from refresh tokens.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest asks for a fresh token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GoogleUserInfo is the subset of the Google userinfo endpoint the
// login flow consumes.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
