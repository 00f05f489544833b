package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	HashSHA256  = "sha256"
	HashSHA3256 = "sha3-256"
)

// Hasher 计算凭据的单向摘要（十六进制，定长，无盐）
type Hasher struct {
	algorithm string
	newHash   func() hash.Hash
}

// NewHasher 根据算法名创建摘要器，空字符串使用 sha256
func NewHasher(algorithm string) (*Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", HashSHA256:
		return &Hasher{algorithm: HashSHA256, newHash: sha256.New}, nil
	case HashSHA3256:
		return &Hasher{algorithm: HashSHA3256, newHash: sha3.New256}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

// Algorithm returns the configured algorithm name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Digest returns the hex digest of secret.
func (h *Hasher) Digest(secret string) string {
	sum := h.newHash()
	sum.Write([]byte(secret))
	return hex.EncodeToString(sum.Sum(nil))
}

// DigestLen is the length of every digest produced by h.
func (h *Hasher) DigestLen() int {
	return h.newHash().Size() * 2
}

// Matches 比较候选明文与已存储摘要
func (h *Hasher) Matches(digest, candidate string) bool {
	computed := h.Digest(candidate)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
