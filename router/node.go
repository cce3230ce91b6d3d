package router

import (
	"strings"

	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/uri"
)

// node is a single path segment level. A prefix node matches every path starting with
// its own, therefore it never has children.
type node struct {
	prefix   bool
	methods  map[method.Method]http.Handler
	children map[string]*node
	param    *param
}

// param is the only dynamic child a node may have. Every route going through it must
// name the parameter the same way.
type param struct {
	name string
	node *node
}

func (n *node) empty() bool {
	return len(n.methods) == 0 && len(n.children) == 0 && n.param == nil
}

// check reports whether the route can be inserted without actually inserting it.
func (n *node) check(segments []segment, m method.Method, prefix bool) error {
	current := n

	for _, seg := range segments {
		if current.prefix {
			return ErrPrefixConflict
		}

		if seg.param {
			if current.param == nil {
				return nil
			}

			if current.param.name != seg.value {
				return ErrParamNameMismatch
			}

			current = current.param.node
			continue
		}

		child, found := current.children[seg.value]
		if !found {
			return nil
		}

		current = child
	}

	switch {
	case current.prefix && !prefix:
		return ErrPrefixConflict
	case prefix && !current.prefix && !current.empty():
		return ErrPrefixOverlap
	}

	if _, found := current.methods[m]; found {
		return ErrDuplicateRoute
	}

	return nil
}

// insert creates missing nodes along the path and returns the last one.
func (n *node) insert(segments []segment, prefix bool) *node {
	current := n

	for _, seg := range segments {
		if seg.param {
			if current.param == nil {
				current.param = &param{name: seg.value, node: new(node)}
			}

			current = current.param.node
			continue
		}

		if current.children == nil {
			current.children = make(map[string]*node)
		}

		child, found := current.children[seg.value]
		if !found {
			child = new(node)
			current.children[seg.value] = child
		}

		current = child
	}

	if current.methods == nil {
		current.methods = make(map[method.Method]http.Handler)
	}

	current.prefix = prefix

	return current
}

func (n *node) allowed() []method.Method {
	allow := make([]method.Method, 0, len(n.methods))
	for _, m := range method.List {
		if _, found := n.methods[m]; found {
			allow = append(allow, m)
		}
	}

	return allow
}

type segment struct {
	value string
	param bool
}

// parsePattern splits the pattern into decoded segments. The leading slash is required
// and doesn't produce a segment, so "/" has none. A trailing "*" isn't a segment either,
// it marks the route as a prefix one.
func parsePattern(pattern string) (segments []segment, prefix bool, err error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, false, ErrBadPattern
	}

	if len(pattern) == 1 {
		return nil, false, nil
	}

	raw := strings.Split(pattern[1:], "/")
	segments = make([]segment, 0, len(raw))

	for i, seg := range raw {
		switch {
		case seg == "*":
			if i != len(raw)-1 {
				return nil, false, ErrNotLeafPrefix
			}

			prefix = true
		case strings.HasPrefix(seg, ":"):
			name, err := uri.Decode(seg[1:])
			if err != nil || len(name) == 0 {
				return nil, false, ErrBadPattern
			}

			segments = append(segments, segment{value: name, param: true})
		default:
			value, err := uri.Decode(seg)
			if err != nil {
				return nil, false, ErrBadPattern
			}

			segments = append(segments, segment{value: value})
		}
	}

	return segments, prefix, nil
}
