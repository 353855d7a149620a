package ranking

import (
	"fmt"
	"time"
)

// Window 排名周期 [Start, End)，Start 为周一零点，End = Start + 7 天
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastCompletedWeek 返回 ref 之前最近一个完整的自然周
// ref 为周一时仍回退一整周，本周永远不会被返回
func LastCompletedWeek(ref time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := ref.In(loc)
	y, m, d := local.Date()

	// 周一=0 ... 周日=6
	offset := (int(local.Weekday()) + 6) % 7
	thisMonday := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	start := thisMonday.AddDate(0, 0, -7)

	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 7),
	}
}

// Contains 判断 t 是否落在窗口内
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Location 窗口所在时区
func (w Window) Location() *time.Location {
	return w.Start.Location()
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}
