package uri

import (
	"strings"

	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/internal/hexconv"
	"github.com/indigo-web/utils/uf"
)

// Decode translates percent-encoded sequences into their true form. A '%' not followed by
// two hex digits results in status.ErrURLDecoding. If there's nothing to decode, the
// string is returned as is without allocating.
func Decode(str string) (string, error) {
	return decode(str, false)
}

// DecodeQuery works like Decode, but additionally treats '+' as a space, as
// application/x-www-form-urlencoded does.
func DecodeQuery(str string) (string, error) {
	return decode(str, true)
}

func decode(str string, plusAsSpace bool) (string, error) {
	first := strings.IndexByte(str, '%')
	if plusAsSpace {
		if plus := strings.IndexByte(str, '+'); plus != -1 && (first == -1 || plus < first) {
			first = plus
		}
	}

	if first == -1 {
		return str, nil
	}

	buff := make([]byte, first, len(str))
	copy(buff, str[:first])

	for i := first; i < len(str); i++ {
		switch c := str[i]; {
		case c == '%':
			if i+2 >= len(str) || !hexconv.IsHex(str[i+1]) || !hexconv.IsHex(str[i+2]) {
				return "", status.ErrURLDecoding
			}

			buff = append(buff, hexconv.Halfbyte[str[i+1]]<<4|hexconv.Halfbyte[str[i+2]])
			i += 2
		case c == '+' && plusAsSpace:
			buff = append(buff, ' ')
		default:
			buff = append(buff, c)
		}
	}

	return uf.B2S(buff), nil
}

// EncodePath escapes everything except unreserved characters and the slashes.
func EncodePath(str string) string {
	return encode(str, false)
}

// EncodeQuery escapes everything except unreserved characters. Spaces become '+'.
func EncodeQuery(str string) string {
	return encode(str, true)
}

func encode(str string, query bool) string {
	var buff []byte

	for i := 0; i < len(str); i++ {
		c := str[i]
		if isUnreserved(c) || (!query && c == '/') {
			if buff != nil {
				buff = append(buff, c)
			}

			continue
		}

		if buff == nil {
			buff = make([]byte, i, len(str)+len(str)/2)
			copy(buff, str[:i])
		}

		if query && c == ' ' {
			buff = append(buff, '+')
			continue
		}

		buff = append(buff, '%', hexconv.Upper[c>>4], hexconv.Upper[c&0xf])
	}

	if buff == nil {
		return str
	}

	return uf.B2S(buff)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '.', '_', '~':
		return true
	}

	return false
}
