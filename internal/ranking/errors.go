package ranking

import "errors"

var (
	// ErrGroupNotFound 群组不存在
	ErrGroupNotFound = errors.New("group not found")

	// ErrTooNew 群组在目标周内或之后创建，没有完整的一周可排名
	ErrTooNew = errors.New("group too new for weekly ranking")

	// ErrUnavailable 群组目录或运动记录暂时不可用，可重试
	ErrUnavailable = errors.New("ranking source unavailable")
)

// Outcome 排名查询结果分类，供边界层转换为具体响应
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeTooNew
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTooNew:
		return "too_new"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Classify 把错误归类为 Outcome，未知错误按不可用处理
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrGroupNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrTooNew):
		return OutcomeTooNew
	default:
		return OutcomeUnavailable
	}
}
