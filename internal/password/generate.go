package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// MinLength is the shortest password Generate produces: one character from
// each class.
const MinLength = 4

// Character classes
const (
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits      = "0123456789"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// ErrTooShort is returned when a requested length is below MinLength.
var ErrTooShort = errors.New("password length must be at least 4")

// Generate returns a random password of the given length containing at
// least one lowercase letter, uppercase letter, digit and punctuation mark.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("%w: got %d", ErrTooShort, length)
	}

	groups := []string{Lowercase, Uppercase, Digits, Punctuation}
	all := Lowercase + Uppercase + Digits + Punctuation

	chars := make([]byte, 0, length)
	for _, g := range groups {
		c, err := pick(g)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates, so the guaranteed characters are not always in front.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randBelow(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

func pick(set string) (byte, error) {
	i, err := randBelow(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randBelow(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return int(v.Int64()), nil
}
