package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yukikurage/quest-tracker-api/internal/constants"
	"github.com/yukikurage/quest-tracker-api/internal/models"
)

var (
	ErrInvalidInput    = errors.New("invalid quest title or category")
	ErrInvalidDueDate  = errors.New("invalid due date")
	ErrInvalidUsername = errors.New("username should be 3-30 characters long and contain only alphanumeric characters")
	ErrInvalidPassword = errors.New("password must be 8-16 characters long and contain at least one lowercase letter, one uppercase letter, one digit, and one special character")
)

var usernamePattern = regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z0-9]{%d,%d}$`, constants.MinUsernameLength, constants.MaxUsernameLength))

// dueDateLayouts are tried in order when parsing a due date.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateTitle requires a non-empty title of at most MaxQuestTitleLength
// characters. Whitespace counts as content.
func ValidateTitle(title string) error {
	if title == "" || utf8.RuneCountInString(title) > constants.MaxQuestTitleLength {
		return ErrInvalidInput
	}
	return nil
}

// ValidateCategory requires a member of the category catalog.
func ValidateCategory(category string) error {
	if !models.IsCategory(category) {
		return ErrInvalidInput
	}
	return nil
}

// ParseDueDate parses raw and requires it to be strictly after now.
// Values without a zone are read as UTC.
func ParseDueDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDueDate
	}

	for _, layout := range dueDateLayouts {
		dueTo, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if !dueTo.After(now) {
			return time.Time{}, ErrInvalidDueDate
		}
		return dueTo.UTC(), nil
	}

	return time.Time{}, ErrInvalidDueDate
}

// ValidateUsername requires 3-30 ASCII letters or digits.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword requires 8-16 characters with a lowercase letter, an
// uppercase letter, a digit and one of constants.PasswordSymbols.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < constants.MinPasswordLength || length > constants.MaxPasswordLength {
		return ErrInvalidPassword
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case unicode.IsDigit(r) && r < utf8.RuneSelf:
			hasDigit = true
		case strings.ContainsRune(constants.PasswordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return ErrInvalidPassword
	}
	return nil
}
