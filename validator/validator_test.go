package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ana@example.com"))
	assert.NoError(t, ValidateEmail("ana.perez+stay@sub.example.co"))

	for _, bad := range []string{"", "ana", "ana@", "@example.com", "ana@example"} {
		err := ValidateEmail(bad)
		assert.Error(t, err, "input %q", bad)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))

	err := ValidatePassword("1234567")
	assert.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestValidateNewUser(t *testing.T) {
	assert.NoError(t, ValidateNewUser("ana@example.com", "secret-password", models.RoleGuest))

	err := ValidateNewUser("", "secret-password", models.RoleGuest)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))

	err = ValidateNewUser("ana@example.com", "short", models.RoleGuest)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	err = ValidateNewUser("ana@example.com", "secret-password", models.Role("ADMIN"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRole))
}

func TestValidateReservationDates(t *testing.T) {
	start := time.Date(2027, time.June, 10, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateReservationDates(start, start.AddDate(0, 0, 5)))

	err := ValidateReservationDates(time.Time{}, start)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))

	err = ValidateReservationDates(start, time.Time{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))

	// zero-length stay
	err = ValidateReservationDates(start, start)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	// inverted range
	err = ValidateReservationDates(start, start.AddDate(0, 0, -3))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}
