package http1

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// isChunked reports whether the chunked coding is the final one in a Transfer-Encoding
// value, e.g. "chunked" or "gzip, chunked".
func isChunked(te string) bool {
	if comma := strings.LastIndexByte(te, ','); comma != -1 {
		te = te[comma+1:]
	}

	return strcomp.EqualFold(trimSpaces(te), "chunked")
}

// parseContentLength accepts only decimal digits, optionally surrounded by whitespace.
func parseContentLength(value string) (length uint64, ok bool) {
	value = trimSpaces(value)
	if len(value) == 0 {
		return 0, false
	}

	for i := 0; i < len(value); i++ {
		char := value[i]
		if char < '0' || char > '9' {
			return 0, false
		}

		if length > (1<<64-1-uint64(char-'0'))/10 {
			return 0, false
		}

		length = length*10 + uint64(char-'0')
	}

	return length, true
}

func trimPrefixSpaces(b []byte) []byte {
	for i, char := range b {
		if char != ' ' {
			return b[i:]
		}
	}

	return b[:0]
}

func trimSpaces(s string) string {
	return strings.Trim(s, " \t")
}
