package decoder

import "errors"

// Decode failure kinds. All of them are expected, recoverable conditions;
// callers treat any of them as "no stream available for this track".
var (
	// ErrMalformedOffset means the field is empty or its first character
	// is not a decimal digit.
	ErrMalformedOffset = errors.New("malformed offset prefix")

	// ErrTruncatedPayload means the field ends before the ciphertext starts.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrInvalidBase64 means the ciphertext region is not decodable base64.
	ErrInvalidBase64 = errors.New("invalid base64 ciphertext")

	// ErrInvalidCiphertextLength means the decoded ciphertext is empty or
	// not block-aligned.
	ErrInvalidCiphertextLength = errors.New("ciphertext length not a positive multiple of block size")

	// ErrDecryptionFailure means the cipher itself could not be set up.
	// Cannot happen with the baked-in key, kept for defense.
	ErrDecryptionFailure = errors.New("decryption failure")

	// ErrMarkerNotFound means the decrypted text carries no stream path.
	ErrMarkerNotFound = errors.New("stream path marker not found")
)
