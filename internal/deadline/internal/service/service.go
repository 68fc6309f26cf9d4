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

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/edusphere/fyptrack/internal/deadline/internal/domain"
	"github.com/edusphere/fyptrack/internal/deadline/internal/repository"
	"github.com/edusphere/fyptrack/internal/deadline/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./service.go -package=deadlinemocks -destination=../../mocks/deadline.mock.go -typed Service

type Service interface {
	// CreateBatch 校验全部通过才落库，不存在部分成功
	CreateBatch(ctx context.Context, batch domain.DeadlineBatch) (int64, error)
	DeactivateBatch(ctx context.Context, id int64) error
	AssignProject(ctx context.Context, projectID, batchID int64) error
	BatchDetail(ctx context.Context, id int64) (domain.DeadlineBatch, error)
	// BatchForProject 课题指派的批次，没有指派返回 NotFoundError
	BatchForProject(ctx context.Context, projectID int64) (domain.DeadlineBatch, error)
	// DeadlineFor 课题下某类文档的截止时间
	DeadlineFor(ctx context.Context, projectID, docTypeID int64) (time.Time, error)
	DueDeadlines(ctx context.Context, now time.Time) ([]domain.DueDeadline, error)
	ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.DeadlineBatch, int64, error)
}

type service struct {
	repo       repository.DeadlineBatchRepository
	docTypeSvc doctype.Service
	minGapDays int
}

func NewService(repo repository.DeadlineBatchRepository, docTypeSvc doctype.Service, minGapDays int) Service {
	return &service{
		repo:       repo,
		docTypeSvc: docTypeSvc,
		minGapDays: minGapDays,
	}
}

func (s *service) CreateBatch(ctx context.Context, batch domain.DeadlineBatch) (int64, error) {
	if strings.TrimSpace(batch.Name) == "" {
		return 0, xerr.NewValidation("批次名称不能为空")
	}
	if len(batch.Deadlines) == 0 {
		return 0, xerr.NewValidation("批次至少要包含一条截止日期")
	}
	if err := s.validateDocTypes(ctx, batch); err != nil {
		return 0, err
	}
	if err := batch.ValidateGaps(s.minGapDays); err != nil {
		return 0, err
	}
	batch.IsActive = true
	id, err := s.repo.CreateBatch(ctx, batch)
	if errors.Is(err, dao.ErrDuplicateName) {
		return 0, xerr.NewConflict("批次名称 %s 已存在", batch.Name)
	}
	return id, err
}

func (s *service) DeactivateBatch(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) AssignProject(ctx context.Context, projectID, batchID int64) error {
	batch, err := s.BatchDetail(ctx, batchID)
	if err != nil {
		return err
	}
	if !batch.IsActive {
		return xerr.NewBusiness(xerr.CodeBatchInactive, "批次 %s 已停用，不能指派", batch.Name)
	}
	return s.repo.AssignProject(ctx, projectID, batchID)
}

func (s *service) BatchDetail(ctx context.Context, id int64) (domain.DeadlineBatch, error) {
	batch, err := s.repo.FindBatch(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DeadlineBatch{}, xerr.NewNotFound("批次 %d 不存在", id)
	}
	return batch, err
}

func (s *service) BatchForProject(ctx context.Context, projectID int64) (domain.DeadlineBatch, error) {
	batch, err := s.repo.FindBatchByProject(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DeadlineBatch{}, xerr.NewNotFound("课题 %d 未指派截止日期批次", projectID)
	}
	return batch, err
}

func (s *service) DeadlineFor(ctx context.Context, projectID, docTypeID int64) (time.Time, error) {
	batch, err := s.BatchForProject(ctx, projectID)
	if err != nil {
		return time.Time{}, err
	}
	for _, d := range batch.Deadlines {
		if d.DocTypeID == docTypeID {
			return d.DeadlineDate, nil
		}
	}
	return time.Time{}, xerr.NewNotFound("批次 %s 中没有文档类型 %d 的截止日期", batch.Name, docTypeID)
}

func (s *service) DueDeadlines(ctx context.Context, now time.Time) ([]domain.DueDeadline, error) {
	return s.repo.DueDeadlines(ctx, now)
}

func (s *service) ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error) {
	return s.repo.ProjectIDsByBatch(ctx, batchID)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.DeadlineBatch, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) validateDocTypes(ctx context.Context, batch domain.DeadlineBatch) error {
	ids := slice.Map(batch.Deadlines, func(idx int, src domain.ProjectDeadline) int64 {
		return src.DocTypeID
	})
	docTypes, err := s.docTypeSvc.ByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		dt, ok := docTypes[id]
		if !ok {
			return xerr.NewValidation("文档类型 %d 不存在", id)
		}
		if !dt.IsActive {
			return xerr.NewValidation("文档类型 %s 已停用", dt.Title)
		}
	}
	return nil
}
