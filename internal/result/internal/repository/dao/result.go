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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicateResult 课题唯一索引冲突，成绩已计算过
	ErrDuplicateResult = errors.New("最终成绩已存在")
	// ErrReleaseClaimFailed 发布抢占失败，成绩不存在或已发布
	ErrReleaseClaimFailed = errors.New("成绩发布抢占失败")
)

type ResultDAO interface {
	// Create 成绩只能整条插入，重复计算返回 ErrDuplicateResult
	Create(ctx context.Context, res FinalResult) (int64, error)
	// Release 未发布到已发布的单向迁移
	Release(ctx context.Context, projectID, releasedBy, releasedAt int64) error
	FindByProject(ctx context.Context, projectID int64) (FinalResult, error)
	List(ctx context.Context, offset, limit int) ([]FinalResult, int64, error)
}

type resultDAO struct {
	db *egorm.Component
}

func NewResultDAO(db *egorm.Component) ResultDAO {
	return &resultDAO{db: db}
}

func (d *resultDAO) Create(ctx context.Context, res FinalResult) (int64, error) {
	now := time.Now().UnixMilli()
	res.Ctime, res.Utime = now, now
	err := d.db.WithContext(ctx).Create(&res).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				return 0, ErrDuplicateResult
			}
		}
		return 0, err
	}
	return res.ID, nil
}

func (d *resultDAO) Release(ctx context.Context, projectID, releasedBy, releasedAt int64) error {
	res := d.db.WithContext(ctx).Model(&FinalResult{}).
		Where("project_id = ? AND released = ?", projectID, false).
		Updates(map[string]any{
			"released":    true,
			"released_by": releasedBy,
			"released_at": releasedAt,
			"utime":       time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReleaseClaimFailed
	}
	return nil
}

func (d *resultDAO) FindByProject(ctx context.Context, projectID int64) (FinalResult, error) {
	var res FinalResult
	err := d.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&res).Error
	return res, err
}

func (d *resultDAO) List(ctx context.Context, offset, limit int) ([]FinalResult, int64, error) {
	var (
		res   []FinalResult
		total int64
	)
	err := d.db.WithContext(ctx).Model(&FinalResult{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = d.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, total, err
}

type FinalResult struct {
	ID         int64                             `gorm:"primaryKey;autoIncrement;comment:最终成绩自增ID"`
	ProjectID  int64                             `gorm:"not null;uniqueIndex:uniq_project_id;comment:课题ID,每个课题一条"`
	FinalScore decimal.Decimal                   `gorm:"type:decimal(9,4);not null;comment:最终成绩,4位小数"`
	Released   bool                              `gorm:"not null;default:false;comment:是否已发布,单向"`
	ReleasedBy int64                             `gorm:"comment:发布操作人ID"`
	ReleasedAt *int64                            `gorm:"comment:发布时间"`
	Breakdown  sqlx.JsonColumn[domain.Breakdown] `gorm:"type:text;comment:各类文档得分明细"`
	Ctime      int64
	Utime      int64
}

func (FinalResult) TableName() string {
	return "final_results"
}
