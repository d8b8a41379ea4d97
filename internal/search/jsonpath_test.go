// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeAccessors(t *testing.T) {
	doc := node{decodeAny(`{"a": {"b": [{"c": " x "}, {"c": 2019}, {"c": ""}]}, "n": null}`)}

	tests := []struct {
		name string
		got  node
		want string
	}{
		{"nested string trimmed", doc.path("a", "b").at(0).key("c"), "x"},
		{"number formatted", doc.path("a", "b").at(1).key("c"), "2019"},
		{"blank string absent", doc.path("a", "b").at(2).key("c"), "-"},
		{"index out of range", doc.path("a", "b").at(9).key("c"), "-"},
		{"negative index", doc.path("a", "b").at(-1).key("c"), "-"},
		{"key on list", doc.path("a", "b", "c"), "-"},
		{"index on object", doc.key("a").at(0), "-"},
		{"null value", doc.key("n"), "-"},
		{"missing key", doc.path("z", "y", "x"), "-"},
		{"object is not a string", doc.key("a"), "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.str().or("-"))
		})
	}
}

func TestNodePresentAndItems(t *testing.T) {
	doc := node{decodeAny(`{"list": [1, "two", null], "obj": {}}`)}

	assert.True(t, doc.key("list").present())
	assert.True(t, doc.key("obj").present())
	assert.False(t, doc.key("missing").present())

	items := doc.key("list").items()
	assert.Len(t, items, 3)
	assert.False(t, items[2].present())

	assert.Empty(t, doc.key("obj").items())
	assert.Empty(t, node{}.items())
}

func decodeAny(body string) any {
	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		panic(err)
	}
	return v
}
