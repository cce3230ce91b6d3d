package hexconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func benchLocal(b *testing.B, str string) {
	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for range b.N {
		var result uint64

		for j := range str {
			result = (result << 4) | uint64(Halfbyte[str[j]])
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.Run("short", func(b *testing.B) {
		benchLocal(b, "123456789abcdef")
	})

	b.Run("long", func(b *testing.B) {
		benchLocal(b, strings.Repeat("123456789abcdef", 100))
	})
}

func TestParseUint(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		value, digits, ok := ParseUint([]byte("1aF"))
		require.True(t, ok)
		require.Equal(t, 3, digits)
		require.Equal(t, uint64(0x1af), value)
	})

	t.Run("stops at the first non-hex", func(t *testing.T) {
		value, digits, ok := ParseUint([]byte("5;name=value"))
		require.True(t, ok)
		require.Equal(t, 1, digits)
		require.Equal(t, uint64(5), value)
	})

	t.Run("no digits", func(t *testing.T) {
		_, digits, ok := ParseUint([]byte("zz"))
		require.True(t, ok)
		require.Zero(t, digits)
	})

	t.Run("overflow", func(t *testing.T) {
		_, _, ok := ParseUint([]byte("1ffffffffffffffff"))
		require.False(t, ok)
	})

	t.Run("max", func(t *testing.T) {
		value, _, ok := ParseUint([]byte("ffffffffffffffff"))
		require.True(t, ok)
		require.Equal(t, ^uint64(0), value)
	})
}
