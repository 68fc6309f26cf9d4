package event

// ResultReleasedEvent 成绩发布后按课题成员逐人投递，由通知服务消费
type ResultReleasedEvent struct {
	ProjectID  int64  `json:"projectId"`
	MemberID   int64  `json:"memberId"`
	FinalScore string `json:"finalScore"`
	ReleasedAt int64  `json:"releasedAt"`
}

func (ResultReleasedEvent) Topic() string {
	return "result_released_events"
}
