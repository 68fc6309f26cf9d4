package web

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/edusphere/fyptrack/internal/deadline/internal/domain"
)

type DeadlineBatch struct {
	ID           int64             `json:"id,omitempty"`
	Name         string            `json:"name"`
	AppliesFrom  int64             `json:"appliesFrom"`
	AppliesUntil *int64            `json:"appliesUntil,omitempty"`
	IsActive     bool              `json:"isActive"`
	Deadlines    []ProjectDeadline `json:"deadlines"`
	Utime        int64             `json:"utime,omitempty"`
}

type ProjectDeadline struct {
	DocTypeID    int64 `json:"docTypeId"`
	DeadlineDate int64 `json:"deadlineDate"`
	SortOrder    int64 `json:"sortOrder"`
}

func (b DeadlineBatch) toDomain() domain.DeadlineBatch {
	res := domain.DeadlineBatch{
		ID:          b.ID,
		Name:        b.Name,
		AppliesFrom: time.UnixMilli(b.AppliesFrom),
	}
	if b.AppliesUntil != nil {
		until := time.UnixMilli(*b.AppliesUntil)
		res.AppliesUntil = &until
	}
	res.Deadlines = slice.Map(b.Deadlines, func(idx int, src ProjectDeadline) domain.ProjectDeadline {
		return domain.ProjectDeadline{
			DocTypeID:    src.DocTypeID,
			DeadlineDate: time.UnixMilli(src.DeadlineDate),
			SortOrder:    src.SortOrder,
		}
	})
	return res
}

func newDeadlineBatch(b domain.DeadlineBatch) DeadlineBatch {
	res := DeadlineBatch{
		ID:          b.ID,
		Name:        b.Name,
		AppliesFrom: b.AppliesFrom.UnixMilli(),
		IsActive:    b.IsActive,
		Utime:       b.Utime.UnixMilli(),
	}
	if b.AppliesUntil != nil {
		until := b.AppliesUntil.UnixMilli()
		res.AppliesUntil = &until
	}
	res.Deadlines = slice.Map(b.Deadlines, func(idx int, src domain.ProjectDeadline) ProjectDeadline {
		return ProjectDeadline{
			DocTypeID:    src.DocTypeID,
			DeadlineDate: src.DeadlineDate.UnixMilli(),
			SortOrder:    src.SortOrder,
		}
	})
	return res
}

type CreateBatchReq struct {
	Batch DeadlineBatch `json:"batch"`
}

type IDReq struct {
	ID int64 `json:"id"`
}

type AssignReq struct {
	ProjectID int64 `json:"projectId"`
	BatchID   int64 `json:"batchId"`
}

type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	Total int64           `json:"total"`
	List  []DeadlineBatch `json:"list"`
}
