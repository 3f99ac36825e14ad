package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "u1", jwt.RoleSeller, "backoffice", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("s3cret", "backoffice", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, jwt.RoleSeller, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "u1", jwt.RoleAdmin, "backoffice", 5)
	require.NoError(t, err)
	expired, err := jwt.Generate("s3cret", "u1", jwt.RoleAdmin, "backoffice", -1)
	require.NoError(t, err)

	cases := map[string]struct{ secret, issuer, token string }{
		"firma incorrecta": {"otro", "backoffice", tok},
		"emisor distinto":  {"s3cret", "otro", tok},
		"expirado":         {"s3cret", "backoffice", expired},
		"basura":           {"s3cret", "", "abc.def.ghi"},
		"sin secret":       {"", "", tok},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := jwt.Parse(c.secret, c.issuer, c.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := jwt.Generate("", "u1", jwt.RoleAdmin, "x", 5)
	assert.Error(t, err)
}
