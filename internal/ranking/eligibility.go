package ranking

import "time"

// CheckEligibility 群组创建日期（窗口时区）必须严格早于 w.Start，否则返回 ErrTooNew
func CheckEligibility(createdAt time.Time, w Window) error {
	loc := w.Location()
	local := createdAt.In(loc)
	y, m, d := local.Date()
	createdDate := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if !createdDate.Before(w.Start) {
		return ErrTooNew
	}
	return nil
}
