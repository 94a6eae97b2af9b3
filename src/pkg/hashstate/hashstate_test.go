package hashstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attended(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
}

func unattended(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("GITHUB_ACTIONS", "")
}

func TestComputeEqualDataEqualHash(t *testing.T) {
	first, e := Compute([][]string{{"2025-01-06", "100"}, {"2025-01-07", "200"}})
	require.Nil(t, e)
	second, e := Compute([][]string{{"2025-01-06", "100"}, {"2025-01-07", "200"}})
	require.Nil(t, e)
	changed, e := Compute([][]string{{"2025-01-06", "100"}, {"2025-01-07", "201"}})
	require.Nil(t, e)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, changed)
}

func TestComputeMapKeyOrderIndependent(t *testing.T) {
	forward := map[string][]string{"a": {"1"}, "b": {"2"}}
	backward := map[string][]string{}
	backward["b"] = []string{"2"}
	backward["a"] = []string{"1"}

	first, e := Compute(forward)
	require.Nil(t, e)
	second, e := Compute(backward)
	require.Nil(t, e)

	assert.Equal(t, first, second)
}

func TestLoadMissingFileIsEmptyState(t *testing.T) {
	hashes := Load(filepath.Join(t.TempDir(), "data_hashes.json"))

	require.NotNil(t, hashes)
	assert.Empty(t, hashes)
}

func TestLoadCorruptFileIsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_hashes.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	assert.Empty(t, Load(path))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_hashes.json")
	state := map[string]string{"weekly_purchase": "abc123", "doc_price": "def456"}

	require.Nil(t, Save(path, state))
	assert.Equal(t, state, Load(path))
}

func TestTrackerAttendedAlwaysRebuilds(t *testing.T) {
	attended(t)
	path := filepath.Join(t.TempDir(), "data_hashes.json")
	data := [][]string{{"2025-01-06", "100"}}

	tracker := NewTracker(path)
	assert.True(t, tracker.Changed("weekly_purchase", data))
	require.Nil(t, tracker.Persist())

	again := NewTracker(path)
	assert.True(t, again.Changed("weekly_purchase", data))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTrackerUnattendedSkipsUnchangedData(t *testing.T) {
	unattended(t)
	path := filepath.Join(t.TempDir(), "data_hashes.json")
	data := [][]string{{"2025-01-06", "100"}}

	first := NewTracker(path)
	assert.True(t, first.Changed("weekly_purchase", data))
	require.Nil(t, first.Persist())

	second := NewTracker(path)
	assert.False(t, second.Changed("weekly_purchase", data))
	assert.True(t, second.Changed("weekly_purchase", [][]string{{"2025-01-06", "150"}}))
	assert.True(t, second.Changed("doc_price", data))
}
