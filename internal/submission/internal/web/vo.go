package web

import (
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
)

type Submission struct {
	ID                   int64  `json:"id,omitempty"`
	ProjectID            int64  `json:"projectId,omitempty"`
	DocTypeID            int64  `json:"docTypeId,omitempty"`
	Version              int64  `json:"version,omitempty"`
	Status               int64  `json:"status,omitempty"`
	IsFinal              bool   `json:"isFinal"`
	FileRef              string `json:"fileRef,omitempty"`
	UploaderID           int64  `json:"uploaderId,omitempty"`
	SupervisorFeedback   string `json:"supervisorFeedback,omitempty"`
	CommitteeAvgScore    string `json:"committeeAvgScore,omitempty"`
	UploadedAt           int64  `json:"uploadedAt,omitempty"`
	SupervisorReviewedAt int64  `json:"supervisorReviewedAt,omitempty"`
}

func newSubmission(sub domain.Submission) Submission {
	res := Submission{
		ID:                 sub.ID,
		ProjectID:          sub.ProjectID,
		DocTypeID:          sub.DocTypeID,
		Version:            sub.Version,
		Status:             int64(sub.Status),
		IsFinal:            sub.IsFinal,
		FileRef:            sub.FileRef,
		UploaderID:         sub.UploaderID,
		SupervisorFeedback: sub.SupervisorFeedback,
		UploadedAt:         sub.UploadedAt.UnixMilli(),
	}
	if sub.CommitteeAvgScore != nil {
		res.CommitteeAvgScore = sub.CommitteeAvgScore.String()
	}
	if sub.SupervisorReviewedAt != nil {
		res.SupervisorReviewedAt = sub.SupervisorReviewedAt.UnixMilli()
	}
	return res
}

type UploadReq struct {
	ProjectID int64  `json:"projectId"`
	DocTypeID int64  `json:"docTypeId"`
	FileRef   string `json:"fileRef"`
}

type IDReq struct {
	ID int64 `json:"id"`
}

type ProjectReq struct {
	ProjectID int64 `json:"projectId"`
}

type ReviseReq struct {
	ID       int64  `json:"id"`
	Feedback string `json:"feedback"`
}

type ApproveReq struct {
	ID int64 `json:"id"`
	// Score 截止日期已过时必填
	Score *int64 `json:"score,omitempty"`
}

type ScoreReq struct {
	ID    int64 `json:"id"`
	Score int64 `json:"score"`
}

type LockReq struct {
	ProjectID int64 `json:"projectId"`
	DocTypeID int64 `json:"docTypeId"`
}

type ListResp struct {
	List []Submission `json:"list"`
}

type SupervisorMark struct {
	SubmissionID int64 `json:"submissionId"`
	Score        int64 `json:"score"`
	Ctime        int64 `json:"ctime,omitempty"`
}
