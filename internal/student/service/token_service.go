package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/vanjararamdhan/student-crud-api/internal/student/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(studentID string) (string, string, error)
	GenerateAccess(studentID string) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
}

// TokenService signs and verifies the two token classes. Access and refresh
// secrets are independent so one leaked key cannot forge the other class.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	StudentID string `json:"id"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// Generate issues a fresh access/refresh pair bound to the student id.
func (ts *TokenService) Generate(studentID string) (string, string, error) {
	accessToken, err := ts.sign(studentID, ts.AccessTokenSecret, ts.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := ts.sign(studentID, ts.RefreshTokenSecret, ts.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateAccess issues a lone access token; used by the refresh exchange,
// which never rotates the refresh token itself.
func (ts *TokenService) GenerateAccess(studentID string) (string, error) {
	return ts.sign(studentID, ts.AccessTokenSecret, ts.AccessTokenExpiry)
}

func (ts *TokenService) sign(studentID, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.AccessTokenSecret)
}

// VerifyRefreshToken parses and validates the given refresh token string
// against the refresh secret; access tokens fail here on signature.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.RefreshTokenSecret)
}

func (ts *TokenService) verify(tokenString, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
