package tagdict_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchoi/tagdict"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &tagdict.BasicMetricsCollector{}
	td := tagdict.New[string](
		tagdict.WithMetricsCollector(metrics),
		tagdict.WithLogger(tagdict.NoopLogger()),
	)

	ref := td.Add("ben", "male", "student")
	require.NoError(t, td.AddTag(ref, "martian"))
	require.NoError(t, td.RemoveTag(ref, "martian"))
	assert.Error(t, td.AddTag(ref+999, "x"))
	td.Get("male")
	td.Get("nope")
	require.NoError(t, td.Remove(ref))
	require.NoError(t, td.Merge(tagdict.New[string]()))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.AddCount)
	assert.Equal(t, int64(0), stats.AddErrors)
	assert.Equal(t, int64(3), stats.MutationCount)
	assert.Equal(t, int64(1), stats.MutationErrors)
	assert.Equal(t, int64(2), stats.QueryCount)
	assert.Equal(t, int64(1), stats.QueryMatches)
	assert.Equal(t, int64(1), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.MergeCount)
	assert.Equal(t, int64(0), stats.MergeEntries)
}

func TestOptions_NilFallbacks(t *testing.T) {
	// Nil collaborators fall back to noops rather than panicking.
	td := tagdict.New[string](
		tagdict.WithMetricsCollector(nil),
		tagdict.WithLogger(nil),
		nil,
	)
	ref := td.Add("ben", "male")
	assert.NotZero(t, ref)
}

func TestWithLogLevel(t *testing.T) {
	td := tagdict.New[string](tagdict.WithLogLevel(slog.LevelError))
	assert.NotZero(t, td.Add("ben", "male"))
}
