package password

import (
	"github.com/alexedwards/argon2id"

	customErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
)

var defaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher derives and verifies argon2id digests. The pepper is a process-wide
// secret appended to every plaintext before hashing, so a leaked database
// alone is not enough to mount an offline attack.
type Hasher struct {
	pepper string
	params *argon2id.Params
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper, params: defaultParams}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := argon2id.CreateHash(plaintext+h.pepper, h.params)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. Malformed digests count
// as a mismatch, not an error: the caller only ever learns yes or no.
func (h *Hasher) Verify(plaintext, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, digest)
	if err != nil {
		return false
	}
	return ok
}
