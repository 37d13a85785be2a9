package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionMatcher(t *testing.T) {
	m := NewQuestionMatcher()

	tests := []struct {
		a, b string
		same bool
	}{
		{a: "What is a stack?", b: "what is a stack", same: true},
		{a: "What is a   queue?", b: "What is a queue?", same: true},
		{a: "What is a binary search tree?", b: "What is a binary serch tree?", same: true},
		{a: "What is a stack?", b: "What is a queue?", same: false},
		{a: "What is Go?", b: "What is Rust?", same: false},
		{a: "", b: "", same: true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.same, m.Same(tt.a, tt.b))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 0, levenshtein("", ""))
	assert.Equal(t, 4, levenshtein("", "abcd"))
	assert.Equal(t, 1, levenshtein("héllo", "hello"))
}
