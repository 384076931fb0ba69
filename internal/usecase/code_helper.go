package usecase

import (
	"crypto/rand"
	"io"
)

// generateCandidateCode creates a random 8-character access code.
// The alphabet is plain [A-Z0-9]; generated codes are candidates only.
// Uniqueness is enforced by the store at issue time, not here.
func generateCandidateCode() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const codeLength = 8
	// 252 is the largest multiple of len(chars) that fits in a byte. Bytes
	// at or above it are redrawn so no symbol is over-represented.
	const unbiasedLimit = 252

	out := make([]byte, 0, codeLength)
	buffer := make([]byte, codeLength)
	for len(out) < codeLength {
		if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
			// rand.Reader failing means the platform is broken; there is no
			// sensible recovery for a code generator.
			panic(err)
		}
		for _, b := range buffer {
			if b >= unbiasedLimit {
				continue
			}
			out = append(out, chars[int(b)%len(chars)])
			if len(out) == codeLength {
				break
			}
		}
	}
	return string(out)
}

func (u *accessUC) GenerateCandidateCode() string {
	return generateCandidateCode()
}
