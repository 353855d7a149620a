package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLastCompletedWeek(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{"monday steps back a full week", date(2024, 1, 22), date(2024, 1, 15)},
		{"monday late evening", time.Date(2024, 1, 22, 23, 59, 59, 0, time.UTC), date(2024, 1, 15)},
		{"tuesday", date(2024, 1, 23), date(2024, 1, 15)},
		{"sunday belongs to current week", time.Date(2024, 1, 21, 23, 0, 0, 0, time.UTC), date(2024, 1, 8)},
		{"year boundary", date(2024, 1, 3), date(2023, 12, 25)},
		{"leap day", date(2024, 2, 29), date(2024, 2, 19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := LastCompletedWeek(tt.ref, time.UTC)
			assert.True(t, tt.wantStart.Equal(w.Start), "start: got %v", w.Start)
			assert.True(t, tt.wantStart.AddDate(0, 0, 7).Equal(w.End), "end: got %v", w.End)
		})
	}
}

func TestLastCompletedWeek_Properties(t *testing.T) {
	ref := date(2023, 12, 1)
	for i := 0; i < 400; i++ {
		d := ref.AddDate(0, 0, i).Add(time.Duration(i%24) * time.Hour)
		w := LastCompletedWeek(d, time.UTC)

		require.Equal(t, time.Monday, w.Start.Weekday(), "ref %v", d)
		require.Equal(t, 7*24*time.Hour, w.End.Sub(w.Start), "ref %v", d)
		require.False(t, w.Contains(d), "ref %v must not fall in its own window %s", d, w)
		require.True(t, d.Sub(w.End) < 7*24*time.Hour, "window %s is not the latest completed week of %v", w, d)
		require.False(t, d.Before(w.End))
	}
}

func TestLastCompletedWeek_Location(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 周日 UTC 16:00 已是首尔的周一
	ref := time.Date(2024, 1, 21, 16, 0, 0, 0, time.UTC)

	utc := LastCompletedWeek(ref, time.UTC)
	assert.Equal(t, "[2024-01-08, 2024-01-15)", utc.String())

	kst := LastCompletedWeek(ref, seoul)
	assert.Equal(t, "[2024-01-15, 2024-01-22)", kst.String())
	assert.Equal(t, seoul, kst.Location())
	assert.Equal(t, 0, kst.Start.Hour())
}

func TestLastCompletedWeek_NilLocation(t *testing.T) {
	w := LastCompletedWeek(date(2024, 1, 22), nil)
	assert.Equal(t, time.UTC, w.Location())
	assert.True(t, date(2024, 1, 8).Equal(w.Start))
}

func TestWindow_Contains(t *testing.T) {
	w := Window{Start: date(2024, 1, 8), End: date(2024, 1, 15)}

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}
