package auth // package auth implements the OTP login primitives and access tokens

import (
	"crypto/aes"    // AES block cipher sealing the OTP challenge
	"crypto/cipher" // CTR stream construction
	"crypto/hmac"   // constant-time digest comparison
	"crypto/rand"   // secure random OTP digits and IVs
	"crypto/sha256" // hash for pbkdf2 and challenge fingerprints
	"encoding/hex"  // hex encoding of sealed blobs
	"errors"        // sentinel errors
	"fmt"           // zero-padded OTP formatting
	"math/big"      // uniform random integer for the OTP value
	"strconv"       // expiry encoding inside the sealed payload
	"strings"       // payload splitting
	"time"          // expiry checks

	"golang.org/x/crypto/pbkdf2" // key derivation from the OTP secret
)

// Sealed OTP challenges travel to the client and come back on verify,
// so the server never stores per-login state. The payload under the
// seal is "<otp>|<mobile>|<unix expiry>"; the mobile binds the
// challenge to the number it was issued for and the expiry bounds the
// login window.

// ErrOTPMismatch is returned when the submitted code does not match the
// sealed challenge.
var ErrOTPMismatch = errors.New("otp mismatch")

// ErrOTPExpired is returned when the sealed challenge is past its expiry.
var ErrOTPExpired = errors.New("otp expired")

// ErrOTPMalformed is returned when the sealed blob or IV cannot be decoded.
var ErrOTPMalformed = errors.New("otp payload malformed")

const otpKeyIter = 4096 // pbkdf2 iterations; the secret is high entropy already

// GenerateOTP returns a uniformly random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SealOTP encrypts the OTP challenge for the given mobile and returns
// the hex-encoded ciphertext and IV. The key is derived from the
// configured secret with pbkdf2 so a leaked ciphertext cannot be opened
// without the server secret.
func SealOTP(secret, mobile, otp string, expiresAt time.Time) (encrypted, iv string, err error) {
	key := otpKey(secret)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", err
	}
	rawIV := make([]byte, aes.BlockSize)
	if _, err := rand.Read(rawIV); err != nil {
		return "", "", err
	}
	payload := []byte(otp + "|" + mobile + "|" + strconv.FormatInt(expiresAt.UTC().Unix(), 10))
	out := make([]byte, len(payload))
	cipher.NewCTR(block, rawIV).XORKeyStream(out, payload)
	return hex.EncodeToString(out), hex.EncodeToString(rawIV), nil
}

// VerifyOTP opens a sealed challenge and checks the submitted code,
// mobile binding, and expiry against the provided clock. It returns
// nil when the login may proceed.
func VerifyOTP(secret, mobile, encrypted, iv, submitted string, now time.Time) error {
	rawCT, err := hex.DecodeString(encrypted)
	if err != nil {
		return ErrOTPMalformed
	}
	rawIV, err := hex.DecodeString(iv)
	if err != nil || len(rawIV) != aes.BlockSize {
		return ErrOTPMalformed
	}
	block, err := aes.NewCipher(otpKey(secret))
	if err != nil {
		return err
	}
	payload := make([]byte, len(rawCT))
	cipher.NewCTR(block, rawIV).XORKeyStream(payload, rawCT)

	parts := strings.Split(string(payload), "|")
	if len(parts) != 3 {
		return ErrOTPMalformed
	}
	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return ErrOTPMalformed
	}
	if now.UTC().Unix() > exp {
		return ErrOTPExpired
	}
	// Compare digests rather than the strings so both checks take
	// constant time regardless of where a mismatch occurs.
	want := sha256.Sum256([]byte(parts[0] + "|" + parts[1]))
	got := sha256.Sum256([]byte(submitted + "|" + mobile))
	if !hmac.Equal(want[:], got[:]) {
		return ErrOTPMismatch
	}
	return nil
}

// otpKey derives the 32-byte AES key from the configured secret.
func otpKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), []byte("match-admin-otp"), otpKeyIter, 32, sha256.New)
}
