// Package testutil provides recording fake providers and assertions shared by SDK tests.
package testutil

import (
	"errors"
	"testing"

	domainerrors "github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertServiceUnavailable asserts err reports the given missing capability.
func AssertServiceUnavailable(t *testing.T, err error, capability string, msgAndArgs ...interface{}) {
	t.Helper()

	var svcErr *domainerrors.ServiceUnavailableError
	require.True(t, errors.As(err, &svcErr), "expected ServiceUnavailableError, got %v", err)
	assert.Equal(t, capability, svcErr.Capability, msgAndArgs...)
}

// AssertWrites asserts a recording writer received exactly the given writes, in order.
func AssertWrites(t *testing.T, w *RecordingWriter, expected ...string) {
	t.Helper()
	if len(expected) == 0 {
		assert.Empty(t, w.Writes())
		return
	}
	assert.Equal(t, expected, w.Writes())
}

// AssertPanics asserts that the function panics
func AssertPanics(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	assert.Panics(t, f, msgAndArgs...)
}

// RequireNoError is a convenience wrapper for require.NoError
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}
