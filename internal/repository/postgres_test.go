package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTsQuery(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected string
	}{
		{name: "single token", tokens: []string{"cafe"}, expected: "cafe"},
		{name: "tokens are and-joined", tokens: []string{"cafe", "mumbai"}, expected: "cafe & mumbai"},
		{name: "operators are stripped", tokens: []string{"cafe&", "!(mumbai)", "bandra:*"}, expected: "cafe & mumbai & bandra"},
		{name: "tokens made only of operators are dropped", tokens: []string{"cafe", "&", "|"}, expected: "cafe"},
		{name: "no tokens", tokens: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tsQuery(tt.tokens))
		})
	}
}
