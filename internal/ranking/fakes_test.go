package ranking

import (
	"context"
	"sync"
	"time"

	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
)

// fakeDirectory 内存群组目录
type fakeDirectory struct {
	mu      sync.Mutex
	groups  map[int64]*model.Group
	members map[int64][]int64
	err     error
	calls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		groups:  make(map[int64]*model.Group),
		members: make(map[int64][]int64),
	}
}

func (f *fakeDirectory) addGroup(id int64, created time.Time, members ...int64) {
	f.groups[id] = &model.Group{ID: id, Name: "group", CreateAt: created}
	f.members[id] = members
}

func (f *fakeDirectory) FindGroup(_ context.Context, id int64) (*model.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}
	return g, nil
}

func (f *fakeDirectory) CurrentMembers(_ context.Context, groupID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.groups[groupID]; !ok {
		return nil, repository.ErrGroupNotFound
	}
	out := make([]int64, len(f.members[groupID]))
	copy(out, f.members[groupID])
	return out, nil
}

// fakeActivity 内存运动记录，按窗口过滤
type fakeActivity struct {
	records []model.ActivityRecord
	err     error
}

func (f *fakeActivity) add(userID int64, score float64, at time.Time) {
	f.records = append(f.records, model.ActivityRecord{
		ID:         int64(len(f.records) + 1),
		UserID:     userID,
		Score:      score,
		RecordedAt: at,
	})
}

func (f *fakeActivity) ScoresInRange(_ context.Context, _ int64, start, end time.Time) (map[int64]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := make(map[int64]float64)
	for _, r := range f.records {
		if !r.RecordedAt.Before(start) && r.RecordedAt.Before(end) {
			totals[r.UserID] += r.Score
		}
	}
	return totals, nil
}
