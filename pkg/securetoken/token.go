// Package securetoken generates random tokens safe for credentials.
package securetoken

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
)

// Base58 excludes the ambiguous characters 0, O, I and l.
const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// New generates a unique random token of the given length.
func New(length int) string {
	pass := make([]byte, length)
	max := big.NewInt(int64(len(base58)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // should never occured because max >= 0
		}
		pass[i] = base58[int(n.Int64())]
	}

	return string(pass)
}

// Compare compares the givens strings in a constant time.
// So length info is not leaked via timing attacks.
func Compare(s1, s2 string) bool {
	return subtle.ConstantTimeCompare([]byte(s1), []byte(s2)) == 1
}
