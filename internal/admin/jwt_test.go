package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "saunahub-test", Duration: time.Hour}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "saunahub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign()
	require.NoError(t, err)

	other := TokenService{Secret: []byte("different"), Issuer: "saunahub-test", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign()
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testTokens().Parse("not-a-jwt")
	assert.Error(t, err)
}
