package nats

// NATS Subject 常量定义
const (
	// SubjectPushNudge 提醒推送事件，由推送网关消费
	SubjectPushNudge = "score.push.nudge"

	// SubjectRankingWeekly 周排行榜事件
	SubjectRankingWeekly = "score.ranking.weekly"
)
