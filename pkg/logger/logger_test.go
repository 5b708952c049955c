package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, INFO, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, WARNING, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}
