package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Realm identifies the JWT authentication realm.
type Realm string

const (
	// RealmCoach tokens carry the coach's permitted team IDs.
	RealmCoach Realm = "coach"
	// RealmDirector tokens see every team.
	RealmDirector Realm = "director"
)

// Claims holds the custom JWT claims for both realms. Tokens are minted
// by the external access-control collaborator; this service only
// validates them and reads the permitted teams.
type Claims struct {
	jwt.RegisteredClaims
	Realm Realm    `json:"realm"`
	Email string   `json:"email,omitempty"`
	Teams []string `json:"teams,omitempty"` // coach realm: permitted team IDs
}

// JWTManager handles token generation and validation for both realms.
type JWTManager struct {
	secret         []byte
	coachExpiry    time.Duration
	directorExpiry time.Duration
}

// NewJWTManager creates a JWT manager with realm-specific expiry durations.
func NewJWTManager(secret string, coachExpiry, directorExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:         []byte(secret),
		coachExpiry:    coachExpiry,
		directorExpiry: directorExpiry,
	}
}

// GenerateToken creates a signed JWT for the given realm and subject.
func (m *JWTManager) GenerateToken(realm Realm, subjectID uuid.UUID, email string, teams []string) (string, error) {
	var expiry time.Duration
	switch realm {
	case RealmCoach:
		expiry = m.coachExpiry
	case RealmDirector:
		expiry = m.directorExpiry
	default:
		return "", fmt.Errorf("unknown realm: %s", realm)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(),
		},
		Realm: realm,
		Email: email,
		Teams: teams,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT, returning claims if valid.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
