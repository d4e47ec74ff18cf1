package util

import (
	"fmt"
	"unicode"
)

// MinPassphraseLength is the shortest passphrase accepted for encrypted backups.
const MinPassphraseLength = 8

func ValidatePassphrase(pass string) error {
	if len([]rune(pass)) < MinPassphraseLength {
		return fmt.Errorf("passphrase must be at least %d characters", MinPassphraseLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range pass {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("passphrase must contain a letter and a digit")
	}
	return nil
}
