package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Digits is the fixed length of every verification code.
const Digits = 6

var codeSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(Digits), nil)

// New returns a zero-padded 6-digit numeric code from crypto/rand.
// Codes are short-lived and single-use, but still drawn from a CSPRNG so they
// cannot be predicted from earlier issuances.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", Digits, n.Int64()), nil
}
