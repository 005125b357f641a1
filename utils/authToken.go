package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/o1egl/paseto"
)

// AccessTokenExpiry is how long an issued token stays valid.
const AccessTokenExpiry = 24 * time.Hour

var (
	ErrTokenExpired       = errors.New("token expired")
	ErrInsufficientRole   = errors.New("insufficient permissions")
	ErrInvalidKeyLength   = errors.New("SYMMETRIC_KEY must be 32 bytes long")
	ErrSymmetricKeyNotSet = errors.New("symmetric key is not configured")
)

// TokenClaims carries the identity attached to every authenticated request.
type TokenClaims struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}

var (
	keyMu        sync.RWMutex
	symmetricKey []byte
)

// SetSymmetricKey installs the PASETO key. It must be exactly 32 bytes.
func SetSymmetricKey(key string) error {
	if len(key) != 32 {
		return fmt.Errorf("%w: current length %d", ErrInvalidKeyLength, len(key))
	}
	keyMu.Lock()
	symmetricKey = []byte(key)
	keyMu.Unlock()
	return nil
}

// GetSymmetricKey returns the configured key.
func GetSymmetricKey() ([]byte, error) {
	keyMu.RLock()
	defer keyMu.RUnlock()
	if symmetricKey == nil {
		return nil, ErrSymmetricKeyNotSet
	}
	return symmetricKey, nil
}

// GenerateAccessToken issues a token for a user.
func GenerateAccessToken(userID, username, role string) (string, error) {
	token, err := generatePASEToken(userID, username, role, AccessTokenExpiry)
	if err != nil {
		Logger.Error().Err(err).Str("user_id", userID).Msg("error generating access token")
		return "", err
	}
	return token, nil
}

func generatePASEToken(userID, username, role string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Expiry:   time.Now().Add(expiry),
	}

	key, err := GetSymmetricKey()
	if err != nil {
		return "", err
	}
	token, err := paseto.NewV2().Encrypt(key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts a token and checks its expiry and, when given, the role.
func ValidateToken(tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	if len(requiredRoles) == 0 {
		return claims, nil
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return claims, nil
		}
	}

	Logger.Debug().Strs("required", requiredRoles).Str("role", claims.Role).Msg("insufficient permissions")
	return nil, ErrInsufficientRole
}

func parseToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	key, err := GetSymmetricKey()
	if err != nil {
		return nil, err
	}

	if err := paseto.NewV2().Decrypt(tokenString, key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	return &claims, nil
}
