package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil input", input: nil, want: nil},
		{name: "trims and drops empties", input: []string{"  foo ", "", "  "}, want: []string{"foo"}},
		{name: "drops duplicates keeping first", input: []string{"a", "b", "a"}, want: []string{"a", "b"}},
		{name: "duplicate after trim", input: []string{" broker:9092", "broker:9092 "}, want: []string{"broker:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}
