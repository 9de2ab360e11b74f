package certify

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	hash, err := HashFile(path)
	require.NoError(t, err)

	// SHA-256 of "hello".
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hash)
	assert.Equal(t, hash, HashData([]byte("hello")))
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestFormatHash(t *testing.T) {
	hash := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	assert.Equal(t, "2cf24dba...938b9824", FormatHash(hash))
	assert.Equal(t, "short", FormatHash("short"))
}

func TestNewVerificationCode(t *testing.T) {
	codeFormat := regexp.MustCompile(`^FB-[A-HJ-NP-Z2-9]{6}-[A-HJ-NP-Z2-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, codeFormat, code)
		seen[code] = true
	}
	// 32^10 possibilities: collisions in 50 draws mean a broken generator.
	assert.Len(t, seen, 50)
}
