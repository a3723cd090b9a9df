package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/quest-tracker-api/internal/constants"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{"simple", "Buy milk", true},
		{"max length", strings.Repeat("a", 30), true},
		{"multibyte at limit", strings.Repeat("é", 30), true},
		{"empty", "", false},
		{"whitespace only", "   ", true},
		{"surrounding spaces", " Buy milk ", true},
		{"too long", strings.Repeat("a", 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("HOME"))
	assert.NoError(t, ValidateCategory("LEARNING"))
	assert.ErrorIs(t, ValidateCategory("home"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateCategory("NOT_A_CATEGORY"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateCategory(""), ErrInvalidInput)
}

func TestParseDueDate(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	dueTo, err := ParseDueDate("2026-10-17T09:30:00.000Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC), dueTo)

	dueTo, err = ParseDueDate("2026-10-17T14:00:00+02:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC), dueTo)

	dueTo, err = ParseDueDate("2026-10-18", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), dueTo)

	for _, raw := range []string{"", "tomorrow", "2026-10-15T12:00:00Z", "2026-10-16T12:00:00Z", "2026-13-01"} {
		_, err := ParseDueDate(raw, now)
		assert.ErrorIs(t, err, ErrInvalidDueDate, raw)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice1"))
	assert.NoError(t, ValidateUsername("abc"))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", 30)))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", constants.MinUsernameLength)))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", constants.MaxUsernameLength)))
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", constants.MinUsernameLength-1)), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", constants.MaxUsernameLength+1)), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername("alice_1"), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername("ålice"), ErrInvalidUsername)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Aa1!aaaa"))
	assert.NoError(t, ValidatePassword("Zz9-Zz9-Zz9-Zz9-"))

	invalid := map[string]string{
		"too short":  "Aa1!aaa",
		"too long":   "Aa1!aaaaaaaaaaaaa",
		"no lower":   "AA1!AAAA",
		"no upper":   "aa1!aaaa",
		"no digit":   "Aaa!aaaa",
		"no symbol":  "Aa1aaaaa",
		"bad symbol": "Aa1~aaaa",
	}
	for name, password := range invalid {
		assert.ErrorIs(t, ValidatePassword(password), ErrInvalidPassword, name)
	}
}
