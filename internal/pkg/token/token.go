package token

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TypeService is the claim value every operator token must carry.
const TypeService = "service"

// Service issues and verifies the bearer tokens that guard the mutating API
// endpoints. Tokens are HS256 JWTs signed with the shared secret.
type Service interface {
	Generate(subject string, ttl time.Duration) (token string, expiresAt int64, err error)
	Validate(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type TokenService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewTokenService(secretKey string) Service {
	return &TokenService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (s *TokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *TokenService) Generate(subject string, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl).Unix()

	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": TypeService,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := s.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TypeService {
		return "", jwt.ErrInvalidJWT()
	}

	return token.Subject(), nil
}
