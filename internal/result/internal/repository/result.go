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
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
	"github.com/edusphere/fyptrack/internal/result/internal/repository/dao"
)

type ResultRepository interface {
	Create(ctx context.Context, res domain.FinalResult) (int64, error)
	Release(ctx context.Context, projectID, releasedBy int64, releasedAt time.Time) error
	FindByProject(ctx context.Context, projectID int64) (domain.FinalResult, error)
	List(ctx context.Context, offset, limit int) ([]domain.FinalResult, int64, error)
}

type resultRepository struct {
	dao dao.ResultDAO
}

func NewResultRepository(d dao.ResultDAO) ResultRepository {
	return &resultRepository{dao: d}
}

func (r *resultRepository) Create(ctx context.Context, res domain.FinalResult) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(res))
}

func (r *resultRepository) Release(ctx context.Context, projectID, releasedBy int64, releasedAt time.Time) error {
	return r.dao.Release(ctx, projectID, releasedBy, releasedAt.UnixMilli())
}

func (r *resultRepository) FindByProject(ctx context.Context, projectID int64) (domain.FinalResult, error) {
	res, err := r.dao.FindByProject(ctx, projectID)
	if err != nil {
		return domain.FinalResult{}, err
	}
	return r.toDomain(res), nil
}

func (r *resultRepository) List(ctx context.Context, offset, limit int) ([]domain.FinalResult, int64, error) {
	list, total, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(list, func(idx int, src dao.FinalResult) domain.FinalResult {
		return r.toDomain(src)
	}), total, nil
}

func (r *resultRepository) toDomain(res dao.FinalResult) domain.FinalResult {
	d := domain.FinalResult{
		ID:         res.ID,
		ProjectID:  res.ProjectID,
		FinalScore: res.FinalScore,
		Released:   res.Released,
		ReleasedBy: res.ReleasedBy,
		Ctime:      time.UnixMilli(res.Ctime),
		Utime:      time.UnixMilli(res.Utime),
	}
	if res.ReleasedAt != nil {
		at := time.UnixMilli(*res.ReleasedAt)
		d.ReleasedAt = &at
	}
	if res.Breakdown.Valid {
		d.Breakdown = res.Breakdown.Val
	}
	return d
}

func (r *resultRepository) toEntity(res domain.FinalResult) dao.FinalResult {
	e := dao.FinalResult{
		ID:         res.ID,
		ProjectID:  res.ProjectID,
		FinalScore: res.FinalScore,
		Released:   res.Released,
		ReleasedBy: res.ReleasedBy,
		Breakdown: sqlx.JsonColumn[domain.Breakdown]{
			Val:   res.Breakdown,
			Valid: len(res.Breakdown.Entries) != 0,
		},
	}
	if res.ReleasedAt != nil {
		at := res.ReleasedAt.UnixMilli()
		e.ReleasedAt = &at
	}
	return e
}
