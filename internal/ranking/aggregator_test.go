package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntries(t *testing.T) {
	tests := []struct {
		name        string
		scores      map[int64]float64
		members     []int64
		want        []Entry
		wantOrphans int
	}{
		{
			name:    "ties share rank and skip",
			scores:  map[int64]float64{1: 10, 2: 10, 3: 5},
			members: []int64{3, 2, 1},
			want:    []Entry{{1, 10, 1}, {2, 10, 1}, {3, 5, 3}},
		},
		{
			name:    "zero fill inactive members",
			scores:  map[int64]float64{2: 3},
			members: []int64{1, 2, 3},
			want:    []Entry{{2, 3, 1}, {1, 0, 2}, {3, 0, 2}},
		},
		{
			name:        "orphan scores dropped",
			scores:      map[int64]float64{1: 1, 99: 50},
			members:     []int64{1},
			want:        []Entry{{1, 1, 1}},
			wantOrphans: 1,
		},
		{
			name:    "duplicate members collapsed",
			scores:  map[int64]float64{1: 2},
			members: []int64{1, 1, 2},
			want:    []Entry{{1, 2, 1}, {2, 0, 2}},
		},
		{
			name:    "all tied",
			scores:  nil,
			members: []int64{5, 4},
			want:    []Entry{{4, 0, 1}, {5, 0, 1}},
		},
		{
			name:    "fractional scores",
			scores:  map[int64]float64{1: 2.5, 2: 2.75, 3: 2.5, 4: 1},
			members: []int64{1, 2, 3, 4},
			want:    []Entry{{2, 2.75, 1}, {1, 2.5, 2}, {3, 2.5, 2}, {4, 1, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, orphans := RankEntries(tt.scores, tt.members)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOrphans, orphans)
		})
	}
}

func TestRankEntries_NoMembers(t *testing.T) {
	got, orphans := RankEntries(map[int64]float64{7: 1}, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, orphans)
}

func TestRankEntries_Deterministic(t *testing.T) {
	scores := map[int64]float64{}
	members := make([]int64, 0, 50)
	for i := int64(50); i > 0; i-- {
		members = append(members, i)
		scores[i] = float64(i % 4)
	}

	first, _ := RankEntries(scores, members)
	for i := 0; i < 20; i++ {
		again, _ := RankEntries(scores, members)
		require.Equal(t, first, again)
	}

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		require.True(t, prev.Score > cur.Score || (prev.Score == cur.Score && prev.UserID < cur.UserID))
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	dir := newFakeDirectory()
	dir.addGroup(1, date(2024, 1, 1), 101, 102, 103)
	act := &fakeActivity{}
	w := Window{Start: date(2024, 1, 8), End: date(2024, 1, 15)}

	act.add(101, 4, w.Start)
	act.add(101, 6, date(2024, 1, 12))
	act.add(102, 10, w.End.Add(-time.Second))
	act.add(103, 5, date(2024, 1, 9))
	act.add(103, 100, w.End)                     // 窗口外
	act.add(103, 100, w.Start.Add(-time.Second)) // 窗口外
	act.add(999, 100, date(2024, 1, 9))          // 非成员

	agg := NewAggregator(dir, act)
	entries, err := agg.Aggregate(context.Background(), 1, w)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{UserID: 101, Score: 10, Rank: 1},
		{UserID: 102, Score: 10, Rank: 1},
		{UserID: 103, Score: 5, Rank: 3},
	}, entries)
}

func TestAggregator_Errors(t *testing.T) {
	w := Window{Start: date(2024, 1, 8), End: date(2024, 1, 15)}

	t.Run("missing group", func(t *testing.T) {
		agg := NewAggregator(newFakeDirectory(), &fakeActivity{})
		_, err := agg.Aggregate(context.Background(), 42, w)
		assert.ErrorIs(t, err, ErrGroupNotFound)
		assert.Equal(t, OutcomeNotFound, Classify(err))
	})

	t.Run("directory down", func(t *testing.T) {
		dir := newFakeDirectory()
		dir.err = errors.New("connection refused")
		agg := NewAggregator(dir, &fakeActivity{})
		_, err := agg.Aggregate(context.Background(), 1, w)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, dir.err)
	})

	t.Run("activity down", func(t *testing.T) {
		dir := newFakeDirectory()
		dir.addGroup(1, date(2024, 1, 1), 1)
		act := &fakeActivity{err: context.DeadlineExceeded}
		agg := NewAggregator(dir, act)
		_, err := agg.Aggregate(context.Background(), 1, w)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
