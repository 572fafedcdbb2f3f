package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_LengthAndVariety(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)

	require.Len(t, a, 32)
	require.Len(t, b, 32)
	if string(a) == string(b) {
		t.Logf("two random 32-byte buffers are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("hunter2")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 7), buf)

	WipeByteArray(nil)
}

func TestSentinelErrors_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("category %q: %w", "Gym", ErrDuplicateName)
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.False(t, errors.Is(err, ErrNotFound))
}
