package main

const (
	// Filename length limit for sanitized track names
	MaxTrackFilenameLen = 255

	// Quality format tier count
	QualityTierCount = 3

	// Crypto buffer sizes
	AESKeySize = 16 // bytes for AES key and IV

	// Regex pattern count
	URLRegexCount = 3
)
