package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateKeyLengthAndClasses(t *testing.T) {
	for length := MinKeyLength; length <= 40; length++ {
		for i := 0; i < 20; i++ {
			key, err := GenerateKey(length)
			if err != nil {
				t.Fatalf("unexpected error generating key: %v", err)
			}
			if len(key) != length {
				t.Fatalf("expected length %d, got %d (%q)", length, len(key), key)
			}
			if !strings.ContainsAny(key, lowerChars) {
				t.Fatalf("missing lowercase in %q", key)
			}
			if !strings.ContainsAny(key, upperChars) {
				t.Fatalf("missing uppercase in %q", key)
			}
			if !strings.ContainsAny(key, digitChars) {
				t.Fatalf("missing digit in %q", key)
			}
			if !strings.ContainsAny(key, symbolChars) {
				t.Fatalf("missing symbol in %q", key)
			}
			for _, r := range key {
				if !strings.ContainsRune(keyAlphabet, r) {
					t.Fatalf("unexpected char %q in %q", r, key)
				}
			}
		}
	}
}

func TestGenerateKeyTooShort(t *testing.T) {
	if _, err := GenerateKey(3); !errors.Is(err, ErrKeyTooShort) {
		t.Fatalf("expected ErrKeyTooShort, got %v", err)
	}
}

func TestGenerateKeyIsStrongAtDefaultLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		key, err := GenerateKey(15)
		if err != nil {
			t.Fatalf("unexpected error generating key: %v", err)
		}
		if !IsStrongPassword(key) {
			t.Fatalf("generated key %q should pass the strength check", key)
		}
	}
}

func TestGenerateKeyGuaranteedCharsMove(t *testing.T) {
	// the first four chars are drawn one per class before shuffling
	firstLower := 0
	for i := 0; i < 200; i++ {
		key, err := GenerateKey(8)
		if err != nil {
			t.Fatalf("unexpected error generating key: %v", err)
		}
		if strings.ContainsRune(lowerChars, rune(key[0])) {
			firstLower++
		}
	}
	if firstLower == 200 {
		t.Fatal("first position is always lowercase, keys are not shuffled")
	}
}
