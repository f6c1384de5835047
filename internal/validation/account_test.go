package validation

import (
	"strings"
	"testing"

	"rollcall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGender(t *testing.T) {
	assert.NoError(t, ValidateGender(models.GenderMale))
	assert.NoError(t, ValidateGender(models.GenderFemale))
	assert.NoError(t, ValidateGender(models.GenderOther))
	assert.Error(t, ValidateGender(""))
	assert.Error(t, ValidateGender("male"), "enum values are case sensitive")
	assert.Error(t, ValidateGender("unknown"))
}

func TestValidateOptionalGender(t *testing.T) {
	assert.NoError(t, ValidateOptionalGender(""))
	assert.NoError(t, ValidateOptionalGender(models.GenderOther))
	assert.Error(t, ValidateOptionalGender("bogus"))
}

func TestValidateMaritalStatus(t *testing.T) {
	assert.NoError(t, ValidateMaritalStatus(""))
	assert.NoError(t, ValidateMaritalStatus(models.MaritalSingle))
	assert.NoError(t, ValidateMaritalStatus(models.MaritalMarried))
	assert.Error(t, ValidateMaritalStatus("Divorced"))
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantErr  bool
	}{
		{"alice", false},
		{"Alice99", false},
		{"", true},
		{"al ice", true},
		{"alice!", true},
		{"al-ice", true},
		{"алиса", true},
	}
	for _, tt := range tests {
		err := ValidateUsername(tt.username)
		if tt.wantErr {
			assert.Error(t, err, "username %q", tt.username)
		} else {
			assert.NoError(t, err, "username %q", tt.username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a much longer passphrase"))

	// bcrypt rejects inputs over 72 bytes, so the validator must too
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 72)))
	err := ValidatePassword(strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
	err = ValidatePassword(strings.Repeat("x", 100))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestParseTriState(t *testing.T) {
	assert.Nil(t, ParseTriState(""))

	yes := ParseTriState("Yes")
	require.NotNil(t, yes)
	assert.True(t, *yes)

	// Any present non-"Yes" value means false, matching the dashboard's
	// Yes/No select semantics.
	no := ParseTriState("No")
	require.NotNil(t, no)
	assert.False(t, *no)

	other := ParseTriState("yes")
	require.NotNil(t, other)
	assert.False(t, *other)
}

func TestParseDOB(t *testing.T) {
	got, err := ParseDOB("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseDOB("1990-05-20")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1990, got.Year())

	_, err = ParseDOB("20-05-1990")
	assert.Error(t, err)

	_, err = ParseDOB("1990-13-40")
	assert.Error(t, err)
}
