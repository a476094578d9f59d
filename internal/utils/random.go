package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit numeric code uniformly distributed in
// [100000, 999999].
func GenerateOTP() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(900000))
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// GenerateEmailToken returns an opaque token for email verification and
// password reset links: 32 random bytes, hex encoded.
func GenerateEmailToken() string {
	return randomHex(32)
}

// GeneratePassword returns a random opaque password for sub-admin accounts.
func GeneratePassword() string {
	return randomHex(GeneratedPasswordBytes)
}

func randomHex(numBytes int) string {
	b := make([]byte, numBytes)
	rand.Read(b)
	return hex.EncodeToString(b)
}
