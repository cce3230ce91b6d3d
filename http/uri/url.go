package uri

import (
	"strconv"
	"strings"

	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/kv"
)

// URL is a request target split into its components. Path is kept exactly as received,
// that is still percent-encoded: decoding it as a whole would make an escaped slash
// indistinguishable from a segment separator. Query keys and values are decoded.
type URL struct {
	Protocol string
	Host     string
	// Port is 0 unless explicitly specified.
	Port  uint16
	Path  string
	Query *kv.Storage
}

// ParseRequest parses a request-target. It accepts the origin form ("/path?query"), the
// absolute form ("http://host:8080/path?query") and the asterisk form ("*"). The request
// target never carries a fragment, so '#' is rejected.
func ParseRequest(target string) (URL, error) {
	return ParseRequestInto(target, kv.New())
}

// ParseRequestInto does the same as ParseRequest, but stores query parameters into the
// passed storage, which is cleared first.
func ParseRequestInto(target string, into *kv.Storage) (URL, error) {
	u := URL{Query: into.Clear()}

	if len(target) == 0 {
		return u, status.ErrBadTarget
	}

	for i := 0; i < len(target); i++ {
		switch c := target[i]; {
		case c == '#':
			return u, status.ErrFragmentNotAllowed
		case c <= 0x20 || c == 0x7f:
			return u, status.ErrProhibitedCharacter
		}
	}

	if target == "*" {
		u.Path = target
		return u, nil
	}

	if target[0] != '/' {
		rest, err := u.parseAuthority(target)
		if err != nil {
			return u, err
		}

		target = rest
	}

	path, query, _ := strings.Cut(target, "?")
	u.Path = path
	if len(u.Path) == 0 {
		u.Path = "/"
	}

	if _, err := Decode(u.Path); err != nil {
		return u, err
	}

	return u, ParseQuery(query, u.Query)
}

func (u *URL) parseAuthority(target string) (rest string, err error) {
	protocol, rest, found := strings.Cut(target, "://")
	if !found || len(protocol) == 0 {
		return "", status.ErrBadTarget
	}

	u.Protocol = strings.ToLower(protocol)

	authorityEnd := strings.IndexAny(rest, "/?")
	if authorityEnd == -1 {
		authorityEnd = len(rest)
	}

	authority := rest[:authorityEnd]
	rest = rest[authorityEnd:]

	host, port, hasPort := strings.Cut(authority, ":")
	if len(host) == 0 {
		return "", status.ErrBadTarget
	}

	u.Host = host

	if hasPort {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil || p == 0 {
			return "", status.ErrBadPort
		}

		u.Port = uint16(p)
	}

	return rest, nil
}

// ParseQuery decodes a query string into the storage. Keys without a value get an empty one,
// empty pairs (as in "a=1&&b=2") are skipped.
func ParseQuery(query string, into *kv.Storage) error {
	for len(query) > 0 {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if len(pair) == 0 {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := DecodeQuery(rawKey)
		if err != nil {
			return err
		}

		value, err := DecodeQuery(rawValue)
		if err != nil {
			return err
		}

		into.Add(key, value)
	}

	return nil
}

// PortOrDefault returns the explicit port if set, otherwise the well-known one for the
// protocol.
func (u URL) PortOrDefault() (uint16, error) {
	if u.Port != 0 {
		return u.Port, nil
	}

	switch u.Protocol {
	case "http":
		return 80, nil
	case "https":
		return 443, nil
	}

	return 0, status.ErrUnknownDefaultPort
}

// EncodeRequest renders the path onwards, as it goes into the request line.
func (u URL) EncodeRequest() string {
	var b strings.Builder
	u.encodeRequest(&b)
	return b.String()
}

func (u URL) encodeRequest(b *strings.Builder) {
	if len(u.Path) == 0 {
		b.WriteByte('/')
	} else {
		b.WriteString(u.Path)
	}

	if u.Query == nil || u.Query.Empty() {
		return
	}

	b.WriteByte('?')
	first := true

	for key, value := range u.Query.Pairs() {
		if !first {
			b.WriteByte('&')
		}

		first = false
		b.WriteString(EncodeQuery(key))
		b.WriteByte('=')
		b.WriteString(EncodeQuery(value))
	}
}

// String renders the whole URL. The protocol and the host are omitted when the URL was
// parsed from the origin form.
func (u URL) String() string {
	var b strings.Builder

	if len(u.Host) > 0 {
		if len(u.Protocol) > 0 {
			b.WriteString(u.Protocol)
			b.WriteString("://")
		}

		b.WriteString(u.Host)
		if u.Port != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(u.Port), 10))
		}
	}

	u.encodeRequest(&b)

	return b.String()
}
