// Package code generates signup verification codes.
package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New returns a uniformly random 6-digit numeric code, zero-padded, in the
// range "000000".."999999".
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
