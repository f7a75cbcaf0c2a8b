package utils

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewRefFormat(t *testing.T) {
    for _, prefix := range []string{RefPrefixBooking, RefPrefixCustomer, RefPrefixFlight, RefPrefixOperator} {
        ref, err := NewRef(prefix)
        require.NoError(t, err)
        require.True(t, strings.HasPrefix(ref, prefix+"-"), "ref %q must start with %s-", ref, prefix)

        body := strings.TrimPrefix(ref, prefix+"-")
        assert.Len(t, body, 10)
        for _, r := range body {
            assert.Contains(t, refAlphabet, string(r), "ref %q contains %q outside the alphabet", ref, r)
        }
        // Ambiguous glyphs are excluded so references survive being
        // read over the phone.
        assert.NotContains(t, body, "0")
        assert.NotContains(t, body, "1")
        assert.NotContains(t, body, "I")
        assert.NotContains(t, body, "O")
    }
}

func TestNewRefUniqueness(t *testing.T) {
    seen := make(map[string]struct{}, 10000)
    for i := 0; i < 10000; i++ {
        ref, err := NewRef(RefPrefixBooking)
        require.NoError(t, err)
        _, dup := seen[ref]
        require.False(t, dup, "duplicate reference %q after %d draws", ref, i)
        seen[ref] = struct{}{}
    }
}

func TestHashRefreshRawStable(t *testing.T) {
    h1 := HashRefreshRaw("some-raw-token")
    h2 := HashRefreshRaw("some-raw-token")
    assert.Equal(t, h1, h2)
    assert.Len(t, h1, 64) // hex sha-256
    assert.NotEqual(t, h1, HashRefreshRaw("other-token"))
}
