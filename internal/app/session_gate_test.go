package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionGate_IssueAndVerify(t *testing.T) {
	gate := NewSessionGate([]byte("test-secret"))

	token, err := gate.Issue("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)
}

func TestSessionGate_ValidUntilExpiry(t *testing.T) {
	issued := time.Now()
	gate := NewSessionGate([]byte("test-secret"))
	gate.now = func() time.Time { return issued }

	token, err := gate.Issue("42")
	require.NoError(t, err)

	// Just inside the window.
	gate.now = func() time.Time { return issued.Add(SessionTTL - time.Second) }
	_, err = gate.Verify(token)
	assert.NoError(t, err)

	// At and past expiry.
	gate.now = func() time.Time { return issued.Add(SessionTTL + time.Second) }
	_, err = gate.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionGate_WrongSecret(t *testing.T) {
	token, err := NewSessionGate([]byte("right-secret")).Issue("42")
	require.NoError(t, err)

	_, err = NewSessionGate([]byte("wrong-secret")).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionGate_Malformed(t *testing.T) {
	gate := NewSessionGate([]byte("test-secret"))

	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := gate.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestSessionGate_LogoutDoesNotRevoke(t *testing.T) {
	// Stateless design: a replayed, unexpired token still verifies after
	// the client discarded it.
	gate := NewSessionGate([]byte("test-secret"))

	token, err := gate.Issue("42")
	require.NoError(t, err)

	subject, err := gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)

	subject, err = gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)
}
