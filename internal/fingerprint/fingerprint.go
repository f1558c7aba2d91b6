// Package fingerprint computes and compares cryptographic digests of a
// dataset's canonical serialization. Two fingerprints are equal iff the
// serialized content is byte-identical.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Prefix identifies the digest algorithm in fingerprint strings.
const Prefix = "sha256:"

// Sum returns the fingerprint of the given content bytes.
func Sum(content []byte) string {
	sum := sha256.Sum256(content)
	return Prefix + hex.EncodeToString(sum[:])
}

// SumReader returns the fingerprint of everything readable from r.
// The content is fully read before a fingerprint is returned; a read
// error yields no fingerprint at all.
func SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return Prefix + hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether content matches a previously computed
// fingerprint.
func Verify(content []byte, fp string) bool {
	return Sum(content) == fp
}

// Equal compares two fingerprint strings.
func Equal(a, b string) bool {
	return a != "" && a == b
}

// IsWellFormed reports whether a string looks like a fingerprint
// produced by this package.
func IsWellFormed(fp string) bool {
	if !strings.HasPrefix(fp, Prefix) {
		return false
	}
	rest := strings.TrimPrefix(fp, Prefix)
	if len(rest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(rest)
	return err == nil
}
