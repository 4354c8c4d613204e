package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortsByCreation(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := make(map[string]bool)
	for _, s := range ids {
		assert.Len(t, s, 26)
		assert.False(t, seen[s])
		seen[s] = true
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	got, err := Time(At(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(got))

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}
