package event

// SubmissionLockedEvent 提交被锁定进入评审，由外部通知服务消费
type SubmissionLockedEvent struct {
	SubmissionID int64 `json:"submissionId"`
	ProjectID    int64 `json:"projectId"`
	DocTypeID    int64 `json:"docTypeId"`
	Deadline     int64 `json:"deadline"`
}

func (SubmissionLockedEvent) Topic() string {
	return "submission_locked_events"
}

// RevisionRequestedEvent 指导教师要求修改，提醒学生重新提交
type RevisionRequestedEvent struct {
	SubmissionID int64  `json:"submissionId"`
	ProjectID    int64  `json:"projectId"`
	DocTypeID    int64  `json:"docTypeId"`
	Feedback     string `json:"feedback"`
}

func (RevisionRequestedEvent) Topic() string {
	return "revision_requested_events"
}
