package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	require.Equal(t, "Not Found", Text(NotFound))
	require.Equal(t, "OK", Text(OK))
	require.True(t, Known(Teapot))
	require.False(t, Known(Code(299)))
	require.Equal(t, 4, MethodNotAllowed.Class())
}

func TestCodeOf(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		require.Equal(t, BadRequest, CodeOf(ErrBadChunkSize))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("parsing first line: %w", ErrMethodNotImplemented)
		require.Equal(t, NotImplemented, CodeOf(err))
		require.True(t, errors.Is(err, ErrMethodNotImplemented))
	})

	t.Run("foreign", func(t *testing.T) {
		require.Equal(t, InternalServerError, CodeOf(errors.New("boom")))
	})
}
