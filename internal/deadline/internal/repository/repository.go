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
	"github.com/edusphere/fyptrack/internal/deadline/internal/domain"
	"github.com/edusphere/fyptrack/internal/deadline/internal/repository/dao"
)

type DeadlineBatchRepository interface {
	CreateBatch(ctx context.Context, batch domain.DeadlineBatch) (int64, error)
	Deactivate(ctx context.Context, id int64) error
	FindBatch(ctx context.Context, id int64) (domain.DeadlineBatch, error)
	FindBatchByProject(ctx context.Context, projectID int64) (domain.DeadlineBatch, error)
	DueDeadlines(ctx context.Context, now time.Time) ([]domain.DueDeadline, error)
	AssignProject(ctx context.Context, projectID, batchID int64) error
	ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.DeadlineBatch, int64, error)
}

type deadlineBatchRepository struct {
	dao dao.DeadlineBatchDAO
}

func NewDeadlineBatchRepository(d dao.DeadlineBatchDAO) DeadlineBatchRepository {
	return &deadlineBatchRepository{dao: d}
}

func (r *deadlineBatchRepository) CreateBatch(ctx context.Context, batch domain.DeadlineBatch) (int64, error) {
	entity, deadlines := r.toEntity(batch)
	return r.dao.CreateBatch(ctx, entity, deadlines)
}

func (r *deadlineBatchRepository) Deactivate(ctx context.Context, id int64) error {
	return r.dao.Deactivate(ctx, id)
}

func (r *deadlineBatchRepository) FindBatch(ctx context.Context, id int64) (domain.DeadlineBatch, error) {
	batch, deadlines, err := r.dao.FindBatch(ctx, id)
	if err != nil {
		return domain.DeadlineBatch{}, err
	}
	return r.toDomain(batch, deadlines), nil
}

func (r *deadlineBatchRepository) FindBatchByProject(ctx context.Context, projectID int64) (domain.DeadlineBatch, error) {
	batch, deadlines, err := r.dao.FindBatchByProject(ctx, projectID)
	if err != nil {
		return domain.DeadlineBatch{}, err
	}
	return r.toDomain(batch, deadlines), nil
}

func (r *deadlineBatchRepository) DueDeadlines(ctx context.Context, now time.Time) ([]domain.DueDeadline, error) {
	due, err := r.dao.DueDeadlines(ctx, now.UnixMilli())
	if err != nil {
		return nil, err
	}
	return slice.Map(due, func(idx int, src dao.ProjectDeadline) domain.DueDeadline {
		return domain.DueDeadline{
			BatchID:      src.BatchID,
			DocTypeID:    src.DocTypeID,
			DeadlineDate: time.UnixMilli(src.DeadlineDate),
		}
	}), nil
}

func (r *deadlineBatchRepository) AssignProject(ctx context.Context, projectID, batchID int64) error {
	return r.dao.AssignProject(ctx, projectID, batchID)
}

func (r *deadlineBatchRepository) ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error) {
	return r.dao.ProjectIDsByBatch(ctx, batchID)
}

func (r *deadlineBatchRepository) List(ctx context.Context, offset, limit int) ([]domain.DeadlineBatch, int64, error) {
	batches, total, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(batches, func(idx int, src dao.DeadlineBatch) domain.DeadlineBatch {
		return r.toDomain(src, nil)
	}), total, nil
}

func (r *deadlineBatchRepository) toDomain(batch dao.DeadlineBatch, deadlines []dao.ProjectDeadline) domain.DeadlineBatch {
	res := domain.DeadlineBatch{
		ID:          batch.ID,
		Name:        batch.Name,
		AppliesFrom: time.UnixMilli(batch.AppliesFrom),
		IsActive:    batch.IsActive,
		Ctime:       time.UnixMilli(batch.Ctime),
		Utime:       time.UnixMilli(batch.Utime),
	}
	if batch.AppliesUntil != nil {
		until := time.UnixMilli(*batch.AppliesUntil)
		res.AppliesUntil = &until
	}
	res.Deadlines = slice.Map(deadlines, func(idx int, src dao.ProjectDeadline) domain.ProjectDeadline {
		return domain.ProjectDeadline{
			ID:           src.ID,
			BatchID:      src.BatchID,
			DocTypeID:    src.DocTypeID,
			DeadlineDate: time.UnixMilli(src.DeadlineDate),
			SortOrder:    src.SortOrder,
		}
	})
	return res
}

func (r *deadlineBatchRepository) toEntity(batch domain.DeadlineBatch) (dao.DeadlineBatch, []dao.ProjectDeadline) {
	entity := dao.DeadlineBatch{
		ID:          batch.ID,
		Name:        batch.Name,
		AppliesFrom: batch.AppliesFrom.UnixMilli(),
		IsActive:    batch.IsActive,
	}
	if batch.AppliesUntil != nil {
		until := batch.AppliesUntil.UnixMilli()
		entity.AppliesUntil = &until
	}
	deadlines := slice.Map(batch.Deadlines, func(idx int, src domain.ProjectDeadline) dao.ProjectDeadline {
		return dao.ProjectDeadline{
			DocTypeID:    src.DocTypeID,
			DeadlineDate: src.DeadlineDate.UnixMilli(),
			SortOrder:    src.SortOrder,
		}
	})
	return entity, deadlines
}
