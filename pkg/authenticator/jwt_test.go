package authenticator_test

import (
	"testing"
	"time"

	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type accessToken struct {
	ID    string `json:"id"`
	Guest bool   `json:"guest"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, accessToken{ID: "user1"})
	require.NoError(t, err)

	var got accessToken
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, accessToken{ID: "user1"}, got)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &msg))
}
