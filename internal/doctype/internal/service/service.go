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

	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository"
	"github.com/edusphere/fyptrack/internal/doctype/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./service.go -package=doctypemocks -destination=../../mocks/doctype.mock.go -typed Service

type Service interface {
	Create(ctx context.Context, dt domain.DocumentType) (int64, error)
	Update(ctx context.Context, dt domain.DocumentType) error
	Deactivate(ctx context.Context, id int64) error
	Detail(ctx context.Context, id int64) (domain.DocumentType, error)
	// ByIDs 按 ID 批量查询，返回 id -> 类型 的映射
	ByIDs(ctx context.Context, ids []int64) (map[int64]domain.DocumentType, error)
	List(ctx context.Context, offset, limit int) ([]domain.DocumentType, int64, error)
}

type service struct {
	repo repository.DocumentTypeRepository
}

func NewService(repo repository.DocumentTypeRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, dt domain.DocumentType) (int64, error) {
	if err := s.validate(dt); err != nil {
		return 0, err
	}
	dt.IsActive = true
	id, err := s.repo.Create(ctx, dt)
	if errors.Is(err, dao.ErrDuplicateCode) {
		return 0, xerr.NewConflict("文档类型编码 %s 已存在", dt.Code)
	}
	return id, err
}

func (s *service) Update(ctx context.Context, dt domain.DocumentType) error {
	if err := s.validate(dt); err != nil {
		return err
	}
	err := s.repo.Update(ctx, dt)
	if errors.Is(err, dao.ErrDuplicateCode) {
		return xerr.NewConflict("文档类型编码 %s 已存在", dt.Code)
	}
	return err
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Detail(ctx context.Context, id int64) (domain.DocumentType, error) {
	dt, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DocumentType{}, xerr.NewNotFound("文档类型 %d 不存在", id)
	}
	return dt, err
}

func (s *service) ByIDs(ctx context.Context, ids []int64) (map[int64]domain.DocumentType, error) {
	list, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make(map[int64]domain.DocumentType, len(list))
	for _, dt := range list {
		res[dt.ID] = dt
	}
	return res, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.DocumentType, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) validate(dt domain.DocumentType) error {
	if strings.TrimSpace(dt.Code) == "" {
		return xerr.NewValidation("文档类型编码不能为空")
	}
	if strings.TrimSpace(dt.Title) == "" {
		return xerr.NewValidation("文档类型名称不能为空")
	}
	if !dt.WeightsValid() {
		return xerr.NewValidation("评分权重必须在 [0,100] 且相加为 100，当前 %d + %d",
			dt.WeightSupervisor, dt.WeightCommittee)
	}
	return nil
}
