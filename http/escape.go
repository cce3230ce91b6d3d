package http

import "github.com/indigo-web/utils/uf"

// Escape makes a string safe for printing into logs: every byte out of the printable ASCII
// range is replaced by a backslash sequence, e.g. "\n" or "\?" for bytes without a
// conventional one. Strings with nothing to escape are returned as is.
func Escape(str string) string {
	var (
		buff   []byte
		offset int
	)

	for i := 0; i < len(str); i++ {
		if isPrintable(str[i]) {
			continue
		}

		if buff == nil {
			buff = make([]byte, 0, len(str)+len(str)/2)
		}

		buff = append(buff, str[offset:i]...)
		buff = append(buff, '\\', escapeByte(str[i]))
		offset = i + 1
	}

	if buff == nil {
		return str
	}

	return uf.B2S(append(buff, str[offset:]...))
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

var escapeTable = [0x20]byte{
	0x0: '0',
	0x7: 'a',
	0x8: 'b',
	0x9: 't',
	0xA: 'n',
	0xB: 'v',
	0xC: 'f',
	0xD: 'r',
}

// escapeByte returns the character following the backslash. Must be called on
// non-printable bytes only.
func escapeByte(c byte) byte {
	if int(c) < len(escapeTable) && escapeTable[c] != 0 {
		return escapeTable[c]
	}

	return '?'
}
