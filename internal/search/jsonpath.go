// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strconv"
	"strings"
)

// node is an optional position inside a decoded JSON document. Accessors
// never fail: a missing or mistyped level yields an absent node, and
// reading an absent node yields an empty optString. Substituting a default
// is a separate step (see optString.or).
type node struct{ v any }

// optString is a string that may be absent.
type optString struct {
	s  string
	ok bool
}

// or returns the value when present, def otherwise.
func (o optString) or(def string) string {
	if !o.ok {
		return def
	}
	return o.s
}

func (n node) present() bool { return n.v != nil }

func (n node) key(k string) node {
	m, _ := n.v.(map[string]any)
	return node{m[k]}
}

func (n node) path(keys ...string) node {
	for _, k := range keys {
		n = n.key(k)
	}
	return n
}

func (n node) at(i int) node {
	list, _ := n.v.([]any)
	if i < 0 || i >= len(list) {
		return node{}
	}
	return node{list[i]}
}

func (n node) items() []node {
	list, _ := n.v.([]any)
	out := make([]node, 0, len(list))
	for _, v := range list {
		out = append(out, node{v})
	}
	return out
}

// str reads a non-blank string. Numbers are formatted, since the registry
// is not consistent about year types.
func (n node) str() optString {
	switch v := n.v.(type) {
	case string:
		v = strings.TrimSpace(v)
		return optString{s: v, ok: v != ""}
	case float64:
		return optString{s: strconv.FormatFloat(v, 'f', -1, 64), ok: true}
	default:
		return optString{}
	}
}
