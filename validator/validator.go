package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Init registers the custom "role" rule on gin's binding validator so DTOs
// can declare binding:"role" and reject anything outside the closed role set
// before it reaches a handler.
func Init() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		v.RegisterValidation("role", func(fl playground.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
	}
}

// ValidateNewUser checks the registration invariants.
func ValidateNewUser(email, password string, role models.Role) error {
	if email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "email must not be empty", nil)
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if !role.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "role must be HOST or GUEST", nil)
	}
	return nil
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid email", nil)
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewAppError(errors.ErrCodeValidation, "password must have at least 8 characters", nil)
	}
	return nil
}

// ValidateReservationDates requires end strictly after start. Zero-length
// ranges would slip through the overlap formula (they never intersect
// anything), so they are rejected here instead of being booked as
// zero-night stays.
func ValidateReservationDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "startDate and endDate must not be empty", nil)
	}
	if !end.After(start) {
		return errors.NewAppError(errors.ErrCodeValidation, "endDate must be after startDate", nil)
	}
	return nil
}
