package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(Identity{Email: " Ana@Example.COM ", Role: models.RoleGuest}, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, models.RoleGuest, identity.Role)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(Identity{Email: "ana@example.com", Role: models.RoleHost}, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenExpired))
}

func TestTokenTamperedSignature(t *testing.T) {
	token, err := GenerateToken(Identity{Email: "ana@example.com", Role: models.RoleHost}, 60)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = ValidateToken(tampered)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTokenInvalid))
}

func TestTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := ValidateToken(raw)
		require.Error(t, err, "input %q", raw)
		assert.True(t, errors.HasCode(err, errors.ErrCodeTokenInvalid))
	}
}
