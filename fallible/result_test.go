package fallible

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := Ok(42)
		require.True(t, r.IsOk())
		require.Equal(t, 42, r.Data())
		require.PanicsWithValue(t, ErrNotOk, func() { _ = r.Err() })
	})

	t.Run("fail", func(t *testing.T) {
		r := Fail[int](io.EOF)
		require.False(t, r.IsOk())
		require.ErrorIs(t, r.Err(), io.EOF)
		require.Panics(t, func() { _ = r.Data() })
	})

	t.Run("fail with nil", func(t *testing.T) {
		r := Fail[string](nil)
		require.False(t, r.IsOk())
		require.ErrorIs(t, r.Err(), ErrNotOk)
	})

	t.Run("of", func(t *testing.T) {
		v, err := Of("x", nil).Get()
		require.NoError(t, err)
		require.Equal(t, "x", v)

		_, err = Of("x", errors.New("boom")).Get()
		require.EqualError(t, err, "boom")
	})
}
