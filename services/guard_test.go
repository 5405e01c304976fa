package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
	assert.Equal(t, "ana@example.com", NormalizeEmail("ana@example.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize("ana@example.com", "ana@example.com"))

	// comparison is normalized on both sides
	assert.NoError(t, Authorize("Ana@Example.com", "  ana@example.COM "))

	err := Authorize("ana@example.com", "bruno@example.com")
	assert.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAccessDenied))
}
