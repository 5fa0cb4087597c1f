package javapoet

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// must unwraps a builder result in tests that construct known-good declarations.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// requireMarked asserts that err carries mark. Marks are only visible to errors.Is from
// cockroachdb/errors.
func requireMarked(t *testing.T, err, mark error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	require.True(t, errors.Is(err, mark), msgAndArgs...)
}
