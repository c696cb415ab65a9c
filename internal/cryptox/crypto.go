// Package cryptox seals persisted snapshots with a passphrase.
//
// The key is derived with Argon2id from the passphrase and a random salt;
// the payload is encrypted with AES-256-GCM. Sealed data is stored as a
// small JSON envelope, so a reader can tell it apart from a plain snapshot.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Format tags sealed envelopes.
const Format = "timekeeper-sealed-v1"

const (
	saltSize = 16
	keySize  = 32
)

var (
	ErrPassphraseRequired = errors.New("data is sealed, passphrase required")
	ErrDecrypt            = errors.New("cannot decrypt data, wrong passphrase or corrupted file")
)

// Envelope is the on-disk form of sealed data. Byte fields are base64 in JSON.
type Envelope struct {
	Format string `json:"format"`
	Salt   []byte `json:"salt"`
	Nonce  []byte `json:"nonce"`
	Data   []byte `json:"data"`
}

// DeriveKey stretches passphrase into an AES-256 key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Seal encrypts plaintext and returns the encoded envelope.
func Seal(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := randomBytes(saltSize)
	if err != nil {
		return nil, err
	}
	key := DeriveKey(passphrase, salt)
	defer Wipe(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce, err := randomBytes(aead.NonceSize())
	if err != nil {
		return nil, err
	}

	env := Envelope{
		Format: Format,
		Salt:   salt,
		Nonce:  nonce,
		Data:   aead.Seal(nil, nonce, plaintext, []byte(Format)),
	}
	return json.Marshal(env)
}

// Open returns the plaintext of data. Data that is not a sealed envelope is
// returned unchanged, which lets plain files be read and then re-saved
// sealed.
func Open(data, passphrase []byte) ([]byte, error) {
	env, ok := parseEnvelope(data)
	if !ok {
		return data, nil
	}
	if len(passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}

	key := DeriveKey(passphrase, env.Salt)
	defer Wipe(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrDecrypt
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Data, []byte(Format))
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// IsSealed reports whether data is a sealed envelope.
func IsSealed(data []byte) bool {
	_, ok := parseEnvelope(data)
	return ok
}

func parseEnvelope(data []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, false
	}
	return env, env.Format == Format
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	return cipher.NewGCM(block)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("random: %w", err)
	}
	return b, nil
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
