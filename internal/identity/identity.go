// Package identity turns user-supplied secret material into the opaque,
// stable partition key that names a journal on disk.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// Separator joins normalized parts before derivation. It cannot be
	// typed into a form field, so ("ab","c") and ("a","bc") never meet.
	Separator = "\x1f"

	// TokenBytes is the number of derived bytes; the token is twice as
	// long once hex-encoded.
	TokenBytes = 16

	salt = "azimut-partition-v1"
	info = "journal-partition-key"
)

// Key is a partition key. The zero Key is unresolved.
type Key struct {
	Token string
}

// Resolved reports whether persistence may be used for this key.
func (k Key) Resolved() bool {
	return k.Token != ""
}

func (k Key) String() string {
	if !k.Resolved() {
		return "unresolved"
	}
	return k.Token
}

// Resolve derives a partition key from the ordered secret parts.
//
// Every part is trimmed; parts containing "@" are treated as email
// addresses and lower-cased. If no parts are given or any part is empty
// after trimming, the returned key is unresolved and callers must not
// touch persistent storage with it.
func Resolve(parts ...string) Key {
	if len(parts) == 0 {
		return Key{}
	}

	normalized := make([]string, len(parts))
	for i, p := range parts {
		n := Normalize(p)
		if n == "" {
			return Key{}
		}
		normalized[i] = n
	}

	material := []byte(strings.Join(normalized, Separator))
	r := hkdf.New(sha256.New, material, []byte(salt), []byte(info))

	out := make([]byte, TokenBytes)
	if _, err := io.ReadFull(r, out); err != nil {
		// HKDF-SHA256 can emit up to 8160 bytes; 16 never fails.
		return Key{}
	}
	return Key{Token: hex.EncodeToString(out)}
}

// Normalize trims p and case-folds it when it looks like an email.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if strings.Contains(p, "@") {
		p = strings.ToLower(p)
	}
	return p
}
