package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	jwtSecretByte = []byte(getEnv("JWTSECRET", ""))
	jwtMutex      sync.RWMutex
)

// argon2id parameters
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// Argon2Prefix marks stored hashes produced by HashPasswordArgon2.
const Argon2Prefix = "argon2id$"

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// HashPassword is the legacy HMAC-SHA256 scheme keyed by the JWT secret.
// It is only used to verify credentials imported before argon2id.
func HashPassword(password string) string {
	h := hmac.New(sha256.New, GetJWTSecretByte())
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateSalt returns a random base64 salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPasswordArgon2 derives an argon2id hash of password with salt.
func HashPasswordArgon2(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("salt must not be empty")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return Argon2Prefix + base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword compares plain against stored in constant time. Stored
// hashes without the argon2id prefix are checked with the legacy scheme.
func VerifyPassword(plain, stored, salt string) (bool, error) {
	var candidate string
	if strings.HasPrefix(stored, Argon2Prefix) {
		h, err := HashPasswordArgon2(plain, salt)
		if err != nil {
			return false, err
		}
		candidate = h
	} else {
		candidate = HashPassword(plain)
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1, nil
}

// SetJWTSecret replaces the secret used to sign tokens.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
