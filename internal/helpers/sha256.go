package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// SHA256 returns the hex-encoded SHA-256 digest of the input string.
// Loaders use a prefix of this digest as the stable identity of inline sources.
func SHA256(input string) string {
	return SHA256Bytes([]byte(input))
}

// SHA256Bytes returns the hex-encoded SHA-256 digest of the input bytes.
func SHA256Bytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

// SHA256Reader digests everything remaining in the reader.
func SHA256Reader(reader io.Reader) (string, error) {
	hash := sha256.New()
	_, err := io.Copy(hash, reader)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
