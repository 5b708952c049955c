package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testColor string

var (
	red  = New(testColor("red"))
	blue = New(testColor("blue"))
)

type testLevel int

var (
	low  = New(testLevel(1))
	high = New(testLevel(3))
)

func TestToEnum(t *testing.T) {
	v, err := ToEnum[testColor]("blue")
	require.NoError(t, err)
	require.Equal(t, blue, v)

	_, err = ToEnum[testColor]("green")
	require.Error(t, err)

	l, err := ToEnum[testLevel]("3")
	require.NoError(t, err)
	require.Equal(t, high, l)

	type unknown string
	_, err = ToEnum[unknown]("x")
	require.Error(t, err)
}

func TestValues(t *testing.T) {
	require.Equal(t, []testColor{red, blue}, Values[testColor]())
	require.Equal(t, []testLevel{low, high}, Values[testLevel]())

	// Registering the same value twice keeps a single member.
	New(testColor("red"))
	require.Len(t, Values[testColor](), 2)
}
