package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentEventsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	verdicts := []string{"first", "second", "third"}
	for _, v := range verdicts {
		require.NoError(t, st.AppendEvent(ctx, "A", "Ann", v))
	}

	events, err := st.RecentEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].OutcomeText)
	assert.Equal(t, "second", events[1].OutcomeText)
}

func TestVerdictCounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.AppendEvent(ctx, "A", "Ann", "20 Push-ups. Now."))
	require.NoError(t, st.AppendEvent(ctx, "B", "Bob", "20 Push-ups. Now."))
	require.NoError(t, st.AppendEvent(ctx, "B", "Bob", "Clean your toilet."))

	counts, err := st.VerdictCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"20 Push-ups. Now.":  2,
		"Clean your toilet.": 1,
	}, counts)
}

func TestHourHistogram(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	hours := []int{3, 3, 15, 23}
	for _, h := range hours {
		at := base.Add(time.Duration(h) * time.Hour)
		st.now = func() time.Time { return at }
		require.NoError(t, st.AppendEvent(ctx, "A", "Ann", "verdict"))
	}
	// A second day at the same hour lands in the same bucket.
	st.now = func() time.Time { return base.Add(24*time.Hour + 15*time.Hour) }
	require.NoError(t, st.AppendEvent(ctx, "A", "Ann", "verdict"))

	hist, err := st.HourHistogram(ctx)
	require.NoError(t, err)

	assert.Len(t, hist, 24)
	assert.Equal(t, 2, hist[3])
	assert.Equal(t, 2, hist[15])
	assert.Equal(t, 1, hist[23])
	assert.Equal(t, 0, hist[0])

	total, err := st.CountEvents(ctx)
	require.NoError(t, err)
	sum := 0
	for _, n := range hist {
		sum += n
	}
	assert.Equal(t, total, sum)
}

func TestHourHistogramEmptyLog(t *testing.T) {
	st := newTestStore(t)

	hist, err := st.HourHistogram(context.Background())
	require.NoError(t, err)
	for h, n := range hist {
		assert.Zero(t, n, "hour %d", h)
	}
}
