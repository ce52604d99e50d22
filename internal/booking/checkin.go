package booking

import (
	"crypto/rand"
	"fmt"
)

// checkInCodeAlphabet avoids characters that read ambiguously when the
// code is typed in manually (0/O, 1/I/L).
const checkInCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const checkInCodeLength = 8

// newCheckInCode mints the short opaque credential the holder presents
// at check-in. Clients render it as a QR code; the facility desk can
// also accept it typed in.
func newCheckInCode() (string, error) {
	buf := make([]byte, checkInCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate check-in code: %w", err)
	}
	for i, b := range buf {
		buf[i] = checkInCodeAlphabet[int(b)%len(checkInCodeAlphabet)]
	}
	return string(buf), nil
}
