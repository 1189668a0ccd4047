package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	prefixes := []string{PrefixStore, PrefixItem, PrefixTag, PrefixLink, PrefixUser}

	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			generated, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(generated, prefix+"-"))

			nano := strings.TrimPrefix(generated, prefix+"-")
			assert.Len(t, nano, 21)
			for _, char := range nano {
				urlSafe := (char >= 'A' && char <= 'Z') ||
					(char >= 'a' && char <= 'z') ||
					(char >= '0' && char <= '9') ||
					char == '_' || char == '-'
				assert.True(t, urlSafe, "character %c is not URL-safe", char)
			}
		})
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		generated, err := Generate(PrefixStore)
		require.NoError(t, err)
		assert.False(t, seen[generated], "duplicate ID: %s", generated)
		seen[generated] = true
	}
}
