// Package certify produces the integrity artifacts that go on a
// distribution certificate: a SHA-256 fingerprint of the uploaded ledger
// (the file itself is never retained) and a human-checkable verification
// code.
package certify

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"
	"os"
)

// KernelVersion identifies the calculation engine release recorded on
// certificates.
const KernelVersion = "waterfall v1.0.0"

// codeAlphabet omits I, O, 0 and 1 so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HashFile computes the SHA-256 hex digest of a ledger file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashData computes the SHA-256 hex digest of in-memory data.
func HashData(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// FormatHash truncates a digest for display: "7f3a1b09...4d2ec91b".
func FormatHash(hash string) string {
	if len(hash) < 16 {
		return hash
	}
	return hash[:8] + "..." + hash[len(hash)-8:]
}

// NewVerificationCode generates a certificate verification code in the
// form FB-XXXXXX-XXXX.
func NewVerificationCode() (string, error) {
	chars := make([]byte, 10)
	maxIndex := big.NewInt(int64(len(codeAlphabet)))
	for i := range chars {
		n, err := rand.Int(rand.Reader, maxIndex)
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		chars[i] = codeAlphabet[n.Int64()]
	}
	code := string(chars)
	return fmt.Sprintf("FB-%s-%s", code[:6], code[6:]), nil
}
