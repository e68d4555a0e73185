package auth

import (
	"errors"
	"testing"
	"time"
)

const secret = "unit-test-otp-secret"

var issued = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestGenerateOTPFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("otp %q is not 6 digits", otp)
		}
		for _, ch := range otp {
			if ch < '0' || ch > '9' {
				t.Fatalf("otp %q contains non-digit", otp)
			}
		}
		seen[otp] = true
	}
	if len(seen) == 1 {
		t.Fatalf("20 generations produced a single value")
	}
}

func TestSealAndVerifyRoundTrip(t *testing.T) {
	enc, iv, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	if err := VerifyOTP(secret, "9876543210", enc, iv, "123456", issued.Add(time.Minute)); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	enc, iv, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	err = VerifyOTP(secret, "9876543210", enc, iv, "654321", issued.Add(time.Minute))
	if !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("err = %v, want ErrOTPMismatch", err)
	}
}

func TestVerifyRejectsWrongMobile(t *testing.T) {
	// The challenge is bound to the number it was issued for; replaying
	// it with another mobile must fail even with the right code.
	enc, iv, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	err = VerifyOTP(secret, "9999999999", enc, iv, "123456", issued.Add(time.Minute))
	if !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("err = %v, want ErrOTPMismatch", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	enc, iv, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	err = VerifyOTP(secret, "9876543210", enc, iv, "123456", issued.Add(6*time.Minute))
	if !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("err = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if err := VerifyOTP(secret, "9876543210", "zz-not-hex", "also-bad", "123456", issued); !errors.Is(err, ErrOTPMalformed) {
		t.Fatalf("err = %v, want ErrOTPMalformed", err)
	}
	enc, _, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	// Valid hex but the wrong IV length is still malformed.
	if err := VerifyOTP(secret, "9876543210", enc, "abcd", "123456", issued); !errors.Is(err, ErrOTPMalformed) {
		t.Fatalf("err = %v, want ErrOTPMalformed", err)
	}
}

func TestVerifyWrongSecretFails(t *testing.T) {
	enc, iv, err := SealOTP(secret, "9876543210", "123456", issued.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("SealOTP: %v", err)
	}
	if err := VerifyOTP("another-secret", "9876543210", enc, iv, "123456", issued.Add(time.Minute)); err == nil {
		t.Fatalf("challenge opened with the wrong secret")
	}
}
