package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 2 * time.Hour

// Authenticator hashes and checks passwords and issues tokens for users.
type Authenticator interface {
	HashPassword(password string) (string, error)
	VerifyPassword(user *model.User, password string) bool
	IssueToken(user *model.User) (string, error)
}

// UserData is the payload signed into every token.
type UserData struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Claims struct {
	Data UserData `json:"data"`
	jwt.RegisteredClaims
}

// TokenService signs HS256 tokens and hashes passwords with bcrypt.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *TokenService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *TokenService) VerifyPassword(user *model.User, password string) bool {
	if user == nil || user.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func (s *TokenService) IssueToken(user *model.User) (string, error) {
	if user == nil {
		return "", errors.New("cannot issue token for empty user")
	}

	now := s.now()
	claims := Claims{
		Data: UserData{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates the signature and expiry and returns the signed user data.
func (s *TokenService) ParseToken(tokenStr string) (*UserData, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Data.ID == "" {
		return nil, errors.New("token carries no user")
	}
	return &claims.Data, nil
}
