package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+"
	keyAlphabet = lowerChars + upperChars + digitChars + symbolChars
)

// MinKeyLength is the shortest key that can hold one char of every class.
const MinKeyLength = 4

var ErrKeyTooShort = errors.New("key length must be at least 4")

// GenerateKey 生成 length 长度的随机密钥，至少包含一个小写字母、大写字母、数字和符号
func GenerateKey(length int) (string, error) {
	if length < MinKeyLength {
		return "", ErrKeyTooShort
	}

	key := make([]byte, 0, length)
	for _, class := range []string{lowerChars, upperChars, digitChars, symbolChars} {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		key = append(key, ch)
	}
	for len(key) < length {
		ch, err := randomChar(keyAlphabet)
		if err != nil {
			return "", err
		}
		key = append(key, ch)
	}

	// Fisher-Yates, so the guaranteed chars do not sit at fixed positions
	for i := len(key) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		key[i], key[j] = key[j], key[i]
	}
	return string(key), nil
}

func randomChar(set string) (byte, error) {
	idx, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
