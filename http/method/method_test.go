package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkParse(b *testing.B) {
	var parsed Method

	for _, m := range List {
		b.Run(m.String(), func(b *testing.B) {
			str := m.String()
			b.SetBytes(int64(len(str)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(str)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, m := range List {
			require.Equal(t, m, Parse(m.String()))
		}
	})

	t.Run("unknown", func(t *testing.T) {
		for _, str := range []string{"", "get", "GETT", "BREW", "OPTION"} {
			require.Equal(t, Unknown, Parse(str), str)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		require.Equal(t, "UNKNOWN", Method(200).String())
	})
}
