package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identifies the caller of the API
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil signs and validates HS256 tokens
type JWTUtil struct {
	config *config.AuthConfig
	now    func() time.Time
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.AuthConfig) *JWTUtil {
	return &JWTUtil{config: cfg, now: time.Now}
}

// GenerateToken creates a token for subject valid for the configured number of hours
func (j *JWTUtil) GenerateToken(subject, scope string) (string, error) {
	if j.config == nil || j.config.SigningKey == "" {
		return "", errors.New("JWT configuration not provided")
	}

	now := j.now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the token
func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	if j.config == nil || j.config.SigningKey == "" {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
