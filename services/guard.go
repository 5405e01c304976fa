package services

import (
	"strings"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
)

// NormalizeEmail trims and case-folds an email. Every identity comparison
// and every stored email goes through this, so the uniqueness check and the
// ownership predicate agree on what "the same email" means.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authorize is the ownership predicate: only the resource's owner may
// mutate it. Denial is terminal for the request.
func Authorize(resourceOwnerEmail, actingEmail string) error {
	if NormalizeEmail(resourceOwnerEmail) != NormalizeEmail(actingEmail) {
		return errors.NewAppError(errors.ErrCodeAccessDenied, "you do not have permission to modify this resource", nil)
	}
	return nil
}
