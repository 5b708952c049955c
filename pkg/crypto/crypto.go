package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// GenerateRandomString returns 32 random bytes encoded in base64.
func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

const upperAlphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateCode returns a random code of n characters in [0-9A-Z].
func GenerateCode(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = upperAlphanumeric[RandIntn(len(upperAlphanumeric))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// RandRange returns a uniform random value in [a, b). It panics if got a
// non-positive parameter or a>=b.
func RandRange(a, b int) int {
	return RandIntn(b-a) + a
}
