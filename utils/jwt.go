package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "hebelki-dev-secret"
	}
	return secret
}

// GenerateToken creates a signed JWT for a staff member. The subject is the
// staff id; businessId and role ride along as custom claims.
// The token expires after the specified duration.
func GenerateToken(subject, businessID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":        subject,
		"businessId": businessID,
		"role":       role,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// StaffClaims is the decoded identity carried by a staff token.
type StaffClaims struct {
	StaffID    string
	BusinessID string
	Role       string
}

// ExtractStaffClaims validates a token string and pulls out the staff identity.
func ExtractStaffClaims(tokenString string) (*StaffClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	businessID, _ := claims["businessId"].(string)
	if businessID == "" {
		return nil, errors.New("token does not contain a valid 'businessId' claim")
	}
	role, _ := claims["role"].(string)

	return &StaffClaims{StaffID: sub, BusinessID: businessID, Role: role}, nil
}
