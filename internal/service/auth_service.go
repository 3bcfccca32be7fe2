package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"hangeul-path/internal/config"
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/logger"
	"hangeul-path/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string

	// HandleGoogleCallback exchanges the authorization code, upserts the
	// user profile and returns a token pair for it.
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *dto.UserProfileResponse, error)

	// RefreshToken trades a valid refresh token for a new pair.
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)

	// ValidateJWT verifies an access token. Refresh tokens are rejected.
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	oauth2Config *oauth2.Config
	jwtConfig    config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, googleCfg config.GoogleOAuthConfig, jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &authServiceImpl{
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtConfig: jwtCfg,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *dto.UserProfileResponse, error) {
	if expectedState == "" || receivedState != expectedState {
		return nil, nil, ErrInvalidAuthState
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.upsertProfile(ctx, info)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(profile)
	if err != nil {
		return nil, nil, err
	}

	response := toProfileResponse(profile)
	return tokens, &response, nil
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.parseJWT(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrInvalidJWTToken
	}

	profile, err := s.userRepo.GetProfileByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidJWTToken
	}
	return s.issueTokens(profile)
}

func (s *authServiceImpl) issueTokens(profile *domain.UserProfile) (*dto.TokenResponse, error) {
	accessToken, err := s.createJWT(profile, s.jwtConfig.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.createJWT(profile, s.jwtConfig.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authServiceImpl) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	var info dto.GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, ErrFailedToGetUserInfo
	}
	return &info, nil
}

// upsertProfile finds the account by Google subject, creating it on
// first login and refreshing name and picture on every return visit.
func (s *authServiceImpl) upsertProfile(ctx context.Context, info *dto.GoogleUserInfo) (*domain.UserProfile, error) {
	profile, err := s.userRepo.GetProfileByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = domain.NewUserProfile(util.NewULID(), info.ID, info.Email, info.Name, info.Picture)
		if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
		logger.Get().Info("new user signed up",
			zap.String("user_id", profile.ID), zap.String("email", profile.Email))
		return profile, nil
	}

	if profile.Name != info.Name || profile.PictureURL != info.Picture {
		if err := s.userRepo.UpdateAccountInfo(ctx, profile.ID, info.Name, info.Picture); err != nil {
			return nil, err
		}
		profile.Name = info.Name
		profile.PictureURL = info.Picture
	}
	return profile, nil
}

func (s *authServiceImpl) createJWT(profile *domain.UserProfile, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    profile.ID,
		Email:     profile.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) parseJWT(tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims, err := s.parseJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType == tokenTypeRefresh {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
