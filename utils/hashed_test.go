package utils

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := GenerateHashValue("super-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "super-secret" {
		t.Fatalf("value not hashed")
	}

	if err := VerifyHashValue("super-secret", hashed); err != nil {
		t.Errorf("verify with the right password: %v", err)
	}
	if err := VerifyHashValue("wrong", hashed); err == nil {
		t.Errorf("verify with the wrong password should fail")
	}
}
