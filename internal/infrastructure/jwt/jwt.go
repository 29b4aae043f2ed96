package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"project-manager-api/internal/application/ports"
)

var ErrInvalidToken = errors.New("invalid token")

// Denylist reports tokens revoked before they expired (logout).
type Denylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Service struct {
	jwtSecret string
	denylist  Denylist
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

// WithDenylist returns a copy of s that also rejects revoked tokens.
func (s *Service) WithDenylist(d Denylist) *Service {
	return &Service{jwtSecret: s.jwtSecret, denylist: d}
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(userID, role string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}
	return claims, nil
}

// Verify resolves a bearer credential into the caller identity.
// A denylist lookup error rejects the token.
func (s *Service) Verify(ctx context.Context, token string) (ports.Identity, error) {
	if token == "" {
		return ports.Identity{}, fmt.Errorf("%w: empty credential", ErrInvalidToken)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return ports.Identity{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: user_id is not a uuid", ErrInvalidToken)
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return ports.Identity{}, fmt.Errorf("%w: denylist lookup: %v", ErrInvalidToken, err)
		}
		if revoked {
			return ports.Identity{}, fmt.Errorf("%w: token revoked", ErrInvalidToken)
		}
	}

	return ports.Identity{UserID: userID, Role: claims.Role}, nil
}
