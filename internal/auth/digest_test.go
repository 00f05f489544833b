package auth

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func TestHasherKnownDigests(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		input     string
		expected  string
	}{
		{
			name:      "sha256 empty",
			algorithm: HashSHA256,
			input:     "",
			expected:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:      "sha256 abc",
			algorithm: "",
			input:     "abc",
			expected:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:      "sha3-256 abc",
			algorithm: HashSHA3256,
			input:     "abc",
			expected:  "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.algorithm)
			if err != nil {
				t.Fatalf("unexpected error creating hasher: %v", err)
			}
			if got := h.Digest(tt.input); got != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestHasherUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewHasher("md5"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestHasherDeterministicFixedLength(t *testing.T) {
	for _, algorithm := range []string{HashSHA256, HashSHA3256} {
		h, err := NewHasher(algorithm)
		if err != nil {
			t.Fatalf("unexpected error creating hasher: %v", err)
		}
		seen := make(map[string]string)
		for i := 0; i < 500; i++ {
			raw := make([]byte, 1+i%64)
			if _, err := rand.Read(raw); err != nil {
				t.Fatalf("rand.Read: %v", err)
			}
			secret := hex.EncodeToString(raw)

			digest := h.Digest(secret)
			if digest != h.Digest(secret) {
				t.Fatalf("%s: digest not deterministic for %q", algorithm, secret)
			}
			if len(digest) != h.DigestLen() {
				t.Fatalf("%s: expected digest length %d, got %d", algorithm, h.DigestLen(), len(digest))
			}
			if prev, ok := seen[digest]; ok && prev != secret {
				t.Fatalf("%s: collision between %q and %q", algorithm, prev, secret)
			}
			seen[digest] = secret
		}
	}
}

func TestHasherMatches(t *testing.T) {
	h, err := NewHasher(HashSHA256)
	if err != nil {
		t.Fatalf("unexpected error creating hasher: %v", err)
	}
	digest := h.Digest("S3curePass!")
	if !h.Matches(digest, "S3curePass!") {
		t.Fatal("expected password to match its digest")
	}
	if h.Matches(digest, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}
