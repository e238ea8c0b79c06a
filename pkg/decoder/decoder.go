// Package decoder reverses the obfuscation applied to stream paths returned
// by the Melodix player-data API.
//
// The server-supplied field is framed as: one ASCII digit N, then N+15
// characters of filler, then the base64 of an AES-128-CBC ciphertext with
// its trailing "=" padding stripped. The plaintext is block-padded with
// arbitrary trailing bytes rather than PKCS#7, so decryption keeps the raw
// blocks and the text is recovered by filtering to printable ASCII and
// searching for the "hls/" path marker.
package decoder

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"strings"
)

// Scheme constants. These are baked into the official players and are the
// same for every request; they are not configuration.
var (
	streamKey = []byte("38f6d9a247e1c50b")
	streamIV  = []byte("a1c3e5d7f9b80246")
)

const (
	// StreamHost is the fixed host prepended to every recovered path.
	StreamHost = "https://stream-cdn.melodix.com/"

	// pathMarker starts the meaningful path inside the decrypted text.
	pathMarker = "hls/"

	// frameSkip is the fixed part of the filler region between the offset
	// digit and the ciphertext.
	frameSkip = 16
)

// Decode recovers the playable stream URL from an encrypted player-data
// field. It is pure and safe for concurrent use; every failure is one of
// the sentinel errors in this package.
func Decode(encryptedField string) (string, error) {
	payload, err := extractPayload(encryptedField)
	if err != nil {
		return "", err
	}

	plaintext, err := decryptPayload(payload)
	if err != nil {
		return "", err
	}

	sanitized := sanitize(plaintext)
	idx := strings.Index(sanitized, pathMarker)
	if idx < 0 {
		return "", ErrMarkerNotFound
	}
	return StreamHost + sanitized[idx:], nil
}

// extractPayload strips the offset digit and filler region and returns the
// base64 ciphertext portion of the field.
func extractPayload(field string) (string, error) {
	if len(field) == 0 || field[0] < '0' || field[0] > '9' {
		return "", ErrMalformedOffset
	}
	offset := int(field[0] - '0')

	start := offset + frameSkip
	if start > len(field) {
		return "", fmt.Errorf("%w: need %d chars, have %d", ErrTruncatedPayload, start, len(field))
	}
	return field[start:], nil
}

// decryptPayload base64-decodes the ciphertext and runs the block cipher.
// The server strips base64 padding, so padding is restored from the payload
// length; extra "=" already present is tolerated.
func decryptPayload(payload string) ([]byte, error) {
	payload = strings.TrimRight(payload+"==", "=")
	ciphertext, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCiphertextLength, len(ciphertext))
	}

	block, err := aes.NewCipher(streamKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailure, err)
	}

	// No padding validation: the final block may end in filler bytes and
	// the sanitization pass disposes of them.
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, streamIV).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}

// sanitize reduces raw decrypted bytes to trimmed printable ASCII. NUL
// bytes, control characters and anything outside 32..126 are dropped, which
// also disposes of malformed UTF-8 without erroring.
func sanitize(plaintext []byte) string {
	kept := make([]byte, 0, len(plaintext))
	for _, b := range plaintext {
		if b >= 0x20 && b <= 0x7e {
			kept = append(kept, b)
		}
	}
	return strings.TrimSpace(string(kept))
}
