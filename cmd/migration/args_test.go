package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	require.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	require.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	require.Error(t, err)

	_, err = parseSteps([]string{"two"})
	require.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	version, err := parseVersion("1")
	require.NoError(t, err)
	require.Equal(t, 1, version)

	_, err = parseVersion("-1")
	require.Error(t, err)

	target, err := parseTarget("2")
	require.NoError(t, err)
	require.Equal(t, uint(2), target)

	_, err = parseTarget("-2")
	require.Error(t, err)
}
