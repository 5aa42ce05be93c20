package service

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashMD5    = "md5"
	HashBcrypt = "bcrypt"
)

// PasswordHasher hashes new passwords with the configured algorithm and
// verifies stored hashes of either format, so md5 rows keep working after
// switching to bcrypt.
type PasswordHasher struct {
	algorithm string
	cost      int
}

func NewPasswordHasher(algorithm string) (*PasswordHasher, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	switch algorithm {
	case "", HashMD5:
		return &PasswordHasher{algorithm: HashMD5}, nil
	case HashBcrypt:
		return &PasswordHasher{algorithm: HashBcrypt, cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unsupported password hash %q", algorithm)
	}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	if h.algorithm == HashBcrypt {
		out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(out), nil
	}
	return md5Hex(plain), nil
}

func (h *PasswordHasher) Verify(plain string, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(md5Hex(plain)), []byte(strings.ToLower(stored))) == 1
}

func md5Hex(plain string) string {
	sum := md5.Sum([]byte(plain))
	return hex.EncodeToString(sum[:])
}
