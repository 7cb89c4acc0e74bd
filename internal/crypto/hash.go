package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// argonParams are the Argon2id cost settings stored alongside each hash.
type argonParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

var defaultArgon = argonParams{memory: 64 * 1024, iterations: 3, parallelism: 2}

const (
	saltLength = 16
	keyLength  = 32
)

// phcHash is a decoded $argon2id$v=..$m=..,t=..,p=..$salt$key string.
type phcHash struct {
	params argonParams
	salt   []byte
	key    []byte
}

func (h phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.memory, h.params.iterations, h.params.parallelism,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key),
	)
}

func parsePHC(encoded string) (phcHash, error) {
	rest, ok := strings.CutPrefix(encoded, "$argon2id$")
	if !ok {
		return phcHash{}, ErrInvalidHashFormat
	}
	fields := strings.Split(rest, "$")
	if len(fields) != 4 {
		return phcHash{}, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(fields[0], "v=%d", &version); err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return phcHash{}, ErrIncompatibleVersion
	}

	var h phcHash
	if _, err := fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d",
		&h.params.memory, &h.params.iterations, &h.params.parallelism); err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(fields[2]); err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(fields[3]); err != nil || len(h.key) == 0 {
		return phcHash{}, ErrInvalidHashFormat
	}
	return h, nil
}

func deriveKey(secret string, salt []byte, p argonParams, n uint32) []byte {
	return argon2.IDKey([]byte(secret), salt, p.iterations, p.memory, p.parallelism, n)
}

// HashPassphrase derives an Argon2id PHC string for the operator passphrase
// that unlocks the admin API.
func HashPassphrase(passphrase string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	h := phcHash{
		params: defaultArgon,
		salt:   salt,
		key:    deriveKey(passphrase, salt, defaultArgon, keyLength),
	}
	return h.String(), nil
}

// VerifyPassphrase reports whether passphrase matches encoded in constant time.
func VerifyPassphrase(passphrase, encoded string) (bool, error) {
	h, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	candidate := deriveKey(passphrase, h.salt, h.params, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(h.key, candidate) == 1, nil
}
