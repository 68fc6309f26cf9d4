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
	"github.com/edusphere/fyptrack/internal/evaluation/internal/domain"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/repository/dao"
)

type EvaluationRepository interface {
	AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error
	UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error
	AssignedEvaluatorIDs(ctx context.Context, submissionID int64) ([]int64, error)
	IsAssigned(ctx context.Context, submissionID, evaluatorID int64) (bool, error)

	UpsertMark(ctx context.Context, submissionID, evaluatorID, score int64) error
	FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error
	FindMark(ctx context.Context, submissionID, evaluatorID int64) (domain.EvaluationMark, error)
	MarksBySubmission(ctx context.Context, submissionID int64) ([]domain.EvaluationMark, error)
}

type evaluationRepository struct {
	dao dao.EvaluationDAO
}

func NewEvaluationRepository(d dao.EvaluationDAO) EvaluationRepository {
	return &evaluationRepository{dao: d}
}

func (r *evaluationRepository) AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error {
	return r.dao.AssignEvaluators(ctx, submissionID, evaluatorIDs)
}

func (r *evaluationRepository) UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error {
	return r.dao.UnassignEvaluator(ctx, submissionID, evaluatorID)
}

func (r *evaluationRepository) AssignedEvaluatorIDs(ctx context.Context, submissionID int64) ([]int64, error) {
	assignments, err := r.dao.Assignments(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return slice.Map(assignments, func(idx int, src dao.SubmissionEvaluator) int64 {
		return src.EvaluatorID
	}), nil
}

func (r *evaluationRepository) IsAssigned(ctx context.Context, submissionID, evaluatorID int64) (bool, error) {
	return r.dao.IsAssigned(ctx, submissionID, evaluatorID)
}

func (r *evaluationRepository) UpsertMark(ctx context.Context, submissionID, evaluatorID, score int64) error {
	return r.dao.UpsertMark(ctx, submissionID, evaluatorID, score)
}

func (r *evaluationRepository) FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error {
	return r.dao.FinalizeMark(ctx, submissionID, evaluatorID)
}

func (r *evaluationRepository) FindMark(ctx context.Context, submissionID, evaluatorID int64) (domain.EvaluationMark, error) {
	mark, err := r.dao.FindMark(ctx, submissionID, evaluatorID)
	if err != nil {
		return domain.EvaluationMark{}, err
	}
	return r.toDomain(mark), nil
}

func (r *evaluationRepository) MarksBySubmission(ctx context.Context, submissionID int64) ([]domain.EvaluationMark, error) {
	marks, err := r.dao.MarksBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return slice.Map(marks, func(idx int, src dao.EvaluationMark) domain.EvaluationMark {
		return r.toDomain(src)
	}), nil
}

func (r *evaluationRepository) toDomain(mark dao.EvaluationMark) domain.EvaluationMark {
	return domain.EvaluationMark{
		ID:           mark.ID,
		SubmissionID: mark.SubmissionID,
		EvaluatorID:  mark.EvaluatorID,
		Score:        mark.Score,
		Finalized:    mark.Finalized,
		Ctime:        time.UnixMilli(mark.Ctime),
		Utime:        time.UnixMilli(mark.Utime),
	}
}
