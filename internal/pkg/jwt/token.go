package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// GenerateToken issues a session token for the participant. The returned
// expiry is a unix timestamp in seconds.
func GenerateToken(participantID uuid.UUID, msisdn string, role models.Role, cfg models.JWTConfig) (string, int64, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute).Unix()

	claims := jwt.MapClaims{
		"participant_id": participantID.String(),
		"msisdn":         msisdn,
		"role":           string(role),
		"exp":            expiresAt,
		"iss":            cfg.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a session token
func ValidateToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ParticipantID extracts the participant id claim from validated claims
func ParticipantID(claims jwt.MapClaims) (string, error) {
	id, ok := claims["participant_id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("token missing participant_id claim")
	}
	return id, nil
}
