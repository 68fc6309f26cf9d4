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
	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository/cache"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

type DocumentTypeRepository interface {
	Create(ctx context.Context, dt domain.DocumentType) (int64, error)
	Update(ctx context.Context, dt domain.DocumentType) error
	Deactivate(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (domain.DocumentType, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.DocumentType, error)
	List(ctx context.Context, offset, limit int) ([]domain.DocumentType, int64, error)
}

type docTypeRepository struct {
	dao    dao.DocumentTypeDAO
	cache  cache.DocTypeCache
	logger *elog.Component
}

func NewDocumentTypeRepository(d dao.DocumentTypeDAO, c cache.DocTypeCache) DocumentTypeRepository {
	return &docTypeRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *docTypeRepository) Create(ctx context.Context, dt domain.DocumentType) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(dt))
}

func (r *docTypeRepository) Update(ctx context.Context, dt domain.DocumentType) error {
	err := r.dao.Update(ctx, r.toEntity(dt))
	if err != nil {
		return err
	}
	r.refreshCache(ctx, dt.ID)
	return nil
}

func (r *docTypeRepository) Deactivate(ctx context.Context, id int64) error {
	err := r.dao.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	r.refreshCache(ctx, id)
	return nil
}

func (r *docTypeRepository) FindByID(ctx context.Context, id int64) (domain.DocumentType, error) {
	dt, err := r.cache.GetDocType(ctx, id)
	if err == nil {
		return dt, nil
	}
	entity, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.DocumentType{}, err
	}
	dt = r.toDomain(entity)
	if err := r.cache.SetDocType(ctx, dt); err != nil {
		r.logger.Error("回填文档类型缓存失败",
			elog.Int64("id", id),
			elog.FieldErr(err))
	}
	return dt, nil
}

func (r *docTypeRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.DocumentType, error) {
	entities, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.DocumentType) domain.DocumentType {
		return r.toDomain(src)
	}), nil
}

func (r *docTypeRepository) List(ctx context.Context, offset, limit int) ([]domain.DocumentType, int64, error) {
	entities, total, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(entities, func(idx int, src dao.DocumentType) domain.DocumentType {
		return r.toDomain(src)
	}), total, nil
}

// refreshCache 写路径之后用库里的最新值覆盖缓存，失败只记日志
func (r *docTypeRepository) refreshCache(ctx context.Context, id int64) {
	entity, err := r.dao.FindByID(ctx, id)
	if err != nil {
		r.logger.Error("刷新文档类型缓存失败",
			elog.Int64("id", id),
			elog.FieldErr(err))
		return
	}
	if err := r.cache.SetDocType(ctx, r.toDomain(entity)); err != nil {
		r.logger.Error("刷新文档类型缓存失败",
			elog.Int64("id", id),
			elog.FieldErr(err))
	}
}

func (r *docTypeRepository) toDomain(dt dao.DocumentType) domain.DocumentType {
	return domain.DocumentType{
		ID:               dt.ID,
		Code:             dt.Code,
		Title:            dt.Title,
		WeightSupervisor: dt.WeightSupervisor,
		WeightCommittee:  dt.WeightCommittee,
		DisplayOrder:     dt.DisplayOrder,
		IsActive:         dt.IsActive,
		Ctime:            time.UnixMilli(dt.Ctime),
		Utime:            time.UnixMilli(dt.Utime),
	}
}

func (r *docTypeRepository) toEntity(dt domain.DocumentType) dao.DocumentType {
	return dao.DocumentType{
		ID:               dt.ID,
		Code:             dt.Code,
		Title:            dt.Title,
		WeightSupervisor: dt.WeightSupervisor,
		WeightCommittee:  dt.WeightCommittee,
		DisplayOrder:     dt.DisplayOrder,
		IsActive:         dt.IsActive,
	}
}
