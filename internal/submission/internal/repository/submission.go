// Copyright 2024 edusphere
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository/dao"
	"github.com/shopspring/decimal"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub domain.Submission) (int64, error)
	CreateNextVersion(ctx context.Context, prev, sub domain.Submission) (int64, error)
	RequestRevision(ctx context.Context, id int64, feedback string) error
	Approve(ctx context.Context, id int64, reviewedAt time.Time, score *int64) error
	CreateSupervisorMark(ctx context.Context, submissionID, score int64) error
	LockFinal(ctx context.Context, projectID, docTypeID int64) (domain.Submission, bool, error)
	MarkEvalInProgress(ctx context.Context, id int64) error
	FinalizeEvaluation(ctx context.Context, id int64, avg decimal.Decimal) error

	FindByID(ctx context.Context, id int64) (domain.Submission, error)
	FindFinal(ctx context.Context, projectID, docTypeID int64) (domain.Submission, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Submission, error)
	FindFinalizedByProject(ctx context.Context, projectID int64) ([]domain.Submission, error)
	FindSupervisorMark(ctx context.Context, submissionID int64) (domain.SupervisorMark, error)
	FindSupervisorMarks(ctx context.Context, submissionIDs []int64) (map[int64]domain.SupervisorMark, error)
}

type submissionRepository struct {
	dao dao.SubmissionDAO
}

func NewSubmissionRepository(d dao.SubmissionDAO) SubmissionRepository {
	return &submissionRepository{dao: d}
}

func (r *submissionRepository) Create(ctx context.Context, sub domain.Submission) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(sub))
}

func (r *submissionRepository) CreateNextVersion(ctx context.Context, prev, sub domain.Submission) (int64, error) {
	return r.dao.CreateNextVersion(ctx, r.toEntity(prev), r.toEntity(sub))
}

func (r *submissionRepository) RequestRevision(ctx context.Context, id int64, feedback string) error {
	return r.dao.RequestRevision(ctx, id, feedback)
}

func (r *submissionRepository) Approve(ctx context.Context, id int64, reviewedAt time.Time, score *int64) error {
	return r.dao.Approve(ctx, id, reviewedAt.UnixMilli(), score)
}

func (r *submissionRepository) CreateSupervisorMark(ctx context.Context, submissionID, score int64) error {
	return r.dao.CreateSupervisorMark(ctx, submissionID, score)
}

func (r *submissionRepository) LockFinal(ctx context.Context, projectID, docTypeID int64) (domain.Submission, bool, error) {
	sub, locked, err := r.dao.LockFinal(ctx, projectID, docTypeID)
	if err != nil {
		return domain.Submission{}, false, err
	}
	return r.toDomain(sub), locked, nil
}

func (r *submissionRepository) MarkEvalInProgress(ctx context.Context, id int64) error {
	return r.dao.MarkEvalInProgress(ctx, id)
}

func (r *submissionRepository) FinalizeEvaluation(ctx context.Context, id int64, avg decimal.Decimal) error {
	return r.dao.FinalizeEvaluation(ctx, id, avg)
}

func (r *submissionRepository) FindByID(ctx context.Context, id int64) (domain.Submission, error) {
	sub, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, err
	}
	return r.toDomain(sub), nil
}

func (r *submissionRepository) FindFinal(ctx context.Context, projectID, docTypeID int64) (domain.Submission, error) {
	sub, err := r.dao.FindFinal(ctx, projectID, docTypeID)
	if err != nil {
		return domain.Submission{}, err
	}
	return r.toDomain(sub), nil
}

func (r *submissionRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Submission, error) {
	subs, err := r.dao.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return slice.Map(subs, func(idx int, src dao.Submission) domain.Submission {
		return r.toDomain(src)
	}), nil
}

func (r *submissionRepository) FindFinalizedByProject(ctx context.Context, projectID int64) ([]domain.Submission, error) {
	subs, err := r.dao.FindFinalizedByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return slice.Map(subs, func(idx int, src dao.Submission) domain.Submission {
		return r.toDomain(src)
	}), nil
}

func (r *submissionRepository) FindSupervisorMark(ctx context.Context, submissionID int64) (domain.SupervisorMark, error) {
	mark, err := r.dao.FindSupervisorMark(ctx, submissionID)
	if err != nil {
		return domain.SupervisorMark{}, err
	}
	return domain.SupervisorMark{
		ID:           mark.ID,
		SubmissionID: mark.SubmissionID,
		Score:        mark.Score,
		Ctime:        time.UnixMilli(mark.Ctime),
	}, nil
}

func (r *submissionRepository) FindSupervisorMarks(ctx context.Context, submissionIDs []int64) (map[int64]domain.SupervisorMark, error) {
	marks, err := r.dao.FindSupervisorMarks(ctx, submissionIDs)
	if err != nil {
		return nil, err
	}
	res := make(map[int64]domain.SupervisorMark, len(marks))
	for _, m := range marks {
		res[m.SubmissionID] = domain.SupervisorMark{
			ID:           m.ID,
			SubmissionID: m.SubmissionID,
			Score:        m.Score,
			Ctime:        time.UnixMilli(m.Ctime),
		}
	}
	return res, nil
}

func (r *submissionRepository) toDomain(sub dao.Submission) domain.Submission {
	res := domain.Submission{
		ID:                 sub.ID,
		ProjectID:          sub.ProjectID,
		DocTypeID:          sub.DocTypeID,
		Version:            sub.Version,
		Status:             domain.SubmissionStatus(sub.Status),
		IsFinal:            sub.IsFinal,
		FileRef:            sub.FileRef,
		UploaderID:         sub.UploaderID,
		SupervisorFeedback: sub.SupervisorFeedback,
		UploadedAt:         time.UnixMilli(sub.UploadedAt),
		Utime:              time.UnixMilli(sub.Utime),
	}
	if sub.CommitteeAvgScore.Valid {
		avg := sub.CommitteeAvgScore.Decimal
		res.CommitteeAvgScore = &avg
	}
	if sub.SupervisorReviewedAt != nil {
		at := time.UnixMilli(*sub.SupervisorReviewedAt)
		res.SupervisorReviewedAt = &at
	}
	return res
}

func (r *submissionRepository) toEntity(sub domain.Submission) dao.Submission {
	res := dao.Submission{
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
		res.CommitteeAvgScore = decimal.NewNullDecimal(*sub.CommitteeAvgScore)
	}
	if sub.SupervisorReviewedAt != nil {
		at := sub.SupervisorReviewedAt.UnixMilli()
		res.SupervisorReviewedAt = &at
	}
	return res
}
