package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/domain"
)

type EvaluationMark struct {
	EvaluatorID int64 `json:"evaluatorId"`
	Score       int64 `json:"score"`
	Finalized   bool  `json:"finalized"`
	Utime       int64 `json:"utime,omitempty"`
}

type AssignReq struct {
	SubmissionID int64   `json:"submissionId"`
	EvaluatorIDs []int64 `json:"evaluatorIds"`
}

type UnassignReq struct {
	SubmissionID int64 `json:"submissionId"`
	EvaluatorID  int64 `json:"evaluatorId"`
}

type MarkReq struct {
	SubmissionID int64 `json:"submissionId"`
	Score        int64 `json:"score"`
}

type FinalizeReq struct {
	SubmissionID int64 `json:"submissionId"`
}

type SummaryReq struct {
	SubmissionID int64 `json:"submissionId"`
}

type SummaryResp struct {
	SubmissionID   int64   `json:"submissionId"`
	EvaluatorIDs   []int64 `json:"evaluatorIds"`
	AssignedCount  int64   `json:"assignedCount"`
	FinalizedCount int64   `json:"finalizedCount"`
	AllFinalized   bool    `json:"allFinalized"`
	// AverageOfFinalized 已定稿评分的平均分，一份都没定稿时为空
	AverageOfFinalized string           `json:"averageOfFinalized,omitempty"`
	Marks              []EvaluationMark `json:"marks"`
}

func newSummaryResp(summary domain.Summary) SummaryResp {
	var avg string
	if summary.AverageOfFinalized != nil {
		avg = summary.AverageOfFinalized.String()
	}
	return SummaryResp{
		SubmissionID:       summary.SubmissionID,
		EvaluatorIDs:       summary.EvaluatorIDs,
		AssignedCount:      summary.AssignedCount,
		FinalizedCount:     summary.FinalizedCount,
		AllFinalized:       summary.AllFinalized(),
		AverageOfFinalized: avg,
		Marks: slice.Map(summary.Marks, func(idx int, src domain.EvaluationMark) EvaluationMark {
			return EvaluationMark{
				EvaluatorID: src.EvaluatorID,
				Score:       src.Score,
				Finalized:   src.Finalized,
				Utime:       src.Utime.UnixMilli(),
			}
		}),
	}
}
