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

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateName 批次名称唯一索引冲突
	ErrDuplicateName = errors.New("批次名称重复")
)

type DeadlineBatchDAO interface {
	// CreateBatch 批次和它的全部截止日期在同一事务里落库，要么全有要么全无
	CreateBatch(ctx context.Context, batch DeadlineBatch, deadlines []ProjectDeadline) (int64, error)
	Deactivate(ctx context.Context, id int64) error
	FindBatch(ctx context.Context, id int64) (DeadlineBatch, []ProjectDeadline, error)
	FindBatchByProject(ctx context.Context, projectID int64) (DeadlineBatch, []ProjectDeadline, error)
	// DueDeadlines 所有启用批次中 deadline_date <= now 的条目
	DueDeadlines(ctx context.Context, now int64) ([]ProjectDeadline, error)
	AssignProject(ctx context.Context, projectID, batchID int64) error
	ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error)
	List(ctx context.Context, offset, limit int) ([]DeadlineBatch, int64, error)
}

type deadlineBatchDAO struct {
	db *egorm.Component
}

func NewDeadlineBatchDAO(db *egorm.Component) DeadlineBatchDAO {
	return &deadlineBatchDAO{db: db}
}

func (d *deadlineBatchDAO) CreateBatch(ctx context.Context, batch DeadlineBatch, deadlines []ProjectDeadline) (int64, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		batch.Ctime, batch.Utime = now, now
		if err := tx.Create(&batch).Error; err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) {
				const uniqueIndexErrNo uint16 = 1062
				if me.Number == uniqueIndexErrNo {
					return ErrDuplicateName
				}
			}
			return err
		}
		for i := range deadlines {
			deadlines[i].BatchID = batch.ID
		}
		return tx.Create(&deadlines).Error
	})
	return batch.ID, err
}

func (d *deadlineBatchDAO) Deactivate(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&DeadlineBatch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active": false,
			"utime":     time.Now().UnixMilli(),
		}).Error
}

func (d *deadlineBatchDAO) FindBatch(ctx context.Context, id int64) (DeadlineBatch, []ProjectDeadline, error) {
	var batch DeadlineBatch
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		return DeadlineBatch{}, nil, err
	}
	deadlines, err := d.deadlinesOf(ctx, batch.ID)
	return batch, deadlines, err
}

func (d *deadlineBatchDAO) FindBatchByProject(ctx context.Context, projectID int64) (DeadlineBatch, []ProjectDeadline, error) {
	var assignment ProjectBatch
	err := d.db.WithContext(ctx).Where("project_id = ?", projectID).First(&assignment).Error
	if err != nil {
		return DeadlineBatch{}, nil, err
	}
	return d.FindBatch(ctx, assignment.BatchID)
}

func (d *deadlineBatchDAO) DueDeadlines(ctx context.Context, now int64) ([]ProjectDeadline, error) {
	var res []ProjectDeadline
	err := d.db.WithContext(ctx).
		Model(&ProjectDeadline{}).
		Joins("JOIN deadline_batches ON deadline_batches.id = project_deadlines.batch_id").
		Where("deadline_batches.is_active = ? AND project_deadlines.deadline_date <= ?", true, now).
		Order("project_deadlines.deadline_date asc").
		Find(&res).Error
	return res, err
}

func (d *deadlineBatchDAO) AssignProject(ctx context.Context, projectID, batchID int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment ProjectBatch
		res := tx.Where(ProjectBatch{ProjectID: projectID}).
			Attrs(ProjectBatch{BatchID: batchID, Ctime: now, Utime: now}).
			FirstOrCreate(&assignment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 && assignment.BatchID != batchID {
			// 已有指派，重新指向新批次
			return tx.Model(&ProjectBatch{}).
				Where("project_id = ?", projectID).
				Updates(map[string]any{
					"batch_id": batchID,
					"utime":    now,
				}).Error
		}
		return nil
	})
}

func (d *deadlineBatchDAO) ProjectIDsByBatch(ctx context.Context, batchID int64) ([]int64, error) {
	var ids []int64
	err := d.db.WithContext(ctx).Model(&ProjectBatch{}).
		Where("batch_id = ?", batchID).
		Pluck("project_id", &ids).Error
	return ids, err
}

func (d *deadlineBatchDAO) List(ctx context.Context, offset, limit int) ([]DeadlineBatch, int64, error) {
	var (
		res   []DeadlineBatch
		total int64
	)
	err := d.db.WithContext(ctx).Model(&DeadlineBatch{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = d.db.WithContext(ctx).
		Order("is_active desc, id desc").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, total, err
}

func (d *deadlineBatchDAO) deadlinesOf(ctx context.Context, batchID int64) ([]ProjectDeadline, error) {
	var deadlines []ProjectDeadline
	err := d.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("sort_order asc").
		Find(&deadlines).Error
	return deadlines, err
}

type DeadlineBatch struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;comment:批次自增ID"`
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_batch_name;comment:批次名称"`
	AppliesFrom  int64  `gorm:"not null;comment:生效开始时间,UTC Unix毫秒数"`
	AppliesUntil *int64 `gorm:"comment:生效结束时间,NULL表示不限"`
	IsActive     bool   `gorm:"not null;default:true;comment:是否启用,只停用不原地修改"`
	Ctime        int64
	Utime        int64
}

func (DeadlineBatch) TableName() string {
	return "deadline_batches"
}

type ProjectDeadline struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:截止日期自增ID"`
	BatchID      int64 `gorm:"not null;index:idx_batch_id;comment:所属批次ID"`
	DocTypeID    int64 `gorm:"not null;comment:文档类型ID"`
	DeadlineDate int64 `gorm:"not null;index:idx_deadline_date;comment:截止时间,UTC Unix毫秒数"`
	SortOrder    int64 `gorm:"not null;default:0;comment:批次内顺序"`
}

func (ProjectDeadline) TableName() string {
	return "project_deadlines"
}

// ProjectBatch 课题与批次的指派关系，一个课题至多挂一个批次
type ProjectBatch struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ProjectID int64 `gorm:"not null;uniqueIndex:uniq_project_id;comment:课题ID"`
	BatchID   int64 `gorm:"not null;index:idx_batch_id;comment:批次ID"`
	Ctime     int64
	Utime     int64
}

func (ProjectBatch) TableName() string {
	return "project_batches"
}
