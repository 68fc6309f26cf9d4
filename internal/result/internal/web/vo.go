package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
)

type FinalResult struct {
	ID         int64            `json:"id,omitempty"`
	ProjectID  int64            `json:"projectId"`
	FinalScore string           `json:"finalScore"`
	Released   bool             `json:"released"`
	ReleasedBy int64            `json:"releasedBy,omitempty"`
	ReleasedAt int64            `json:"releasedAt,omitempty"`
	Breakdown  []BreakdownEntry `json:"breakdown"`
}

type BreakdownEntry struct {
	DocTypeID        int64  `json:"docTypeId"`
	DocTypeCode      string `json:"docTypeCode"`
	DocTypeTitle     string `json:"docTypeTitle"`
	SubmissionID     int64  `json:"submissionId"`
	SupervisorScore  int64  `json:"supervisorScore"`
	CommitteeAvg     string `json:"committeeAvg"`
	EvaluatorCount   int64  `json:"evaluatorCount"`
	WeightSupervisor int64  `json:"weightSupervisor"`
	WeightCommittee  int64  `json:"weightCommittee"`
	WeightedScore    string `json:"weightedScore"`
}

func newFinalResult(res domain.FinalResult) FinalResult {
	vo := FinalResult{
		ID:         res.ID,
		ProjectID:  res.ProjectID,
		FinalScore: res.FinalScore.String(),
		Released:   res.Released,
		ReleasedBy: res.ReleasedBy,
		Breakdown: slice.Map(res.Breakdown.Entries, func(idx int, src domain.BreakdownEntry) BreakdownEntry {
			return BreakdownEntry{
				DocTypeID:        src.DocTypeID,
				DocTypeCode:      src.DocTypeCode,
				DocTypeTitle:     src.DocTypeTitle,
				SubmissionID:     src.SubmissionID,
				SupervisorScore:  src.SupervisorScore,
				CommitteeAvg:     src.CommitteeAvg.String(),
				EvaluatorCount:   src.EvaluatorCount,
				WeightSupervisor: src.WeightSupervisor,
				WeightCommittee:  src.WeightCommittee,
				WeightedScore:    src.WeightedScore.String(),
			}
		}),
	}
	if res.ReleasedAt != nil {
		vo.ReleasedAt = res.ReleasedAt.UnixMilli()
	}
	return vo
}

type ProjectReq struct {
	ProjectID int64 `json:"projectId"`
}

type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	Total int64         `json:"total"`
	List  []FinalResult `json:"list"`
}
