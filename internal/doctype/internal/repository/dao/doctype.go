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
)

var (
	// ErrDuplicateCode 文档类型编码唯一索引冲突
	ErrDuplicateCode = errors.New("文档类型编码重复")
)

type DocumentTypeDAO interface {
	Create(ctx context.Context, dt DocumentType) (int64, error)
	Update(ctx context.Context, dt DocumentType) error
	Deactivate(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (DocumentType, error)
	FindByIDs(ctx context.Context, ids []int64) ([]DocumentType, error)
	List(ctx context.Context, offset, limit int) ([]DocumentType, int64, error)
}

type documentTypeDAO struct {
	db *egorm.Component
}

func NewDocumentTypeDAO(db *egorm.Component) DocumentTypeDAO {
	return &documentTypeDAO{db: db}
}

func (d *documentTypeDAO) Create(ctx context.Context, dt DocumentType) (int64, error) {
	now := time.Now().UnixMilli()
	dt.Ctime, dt.Utime = now, now
	err := d.db.WithContext(ctx).Create(&dt).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				return 0, ErrDuplicateCode
			}
		}
		return 0, err
	}
	return dt.ID, nil
}

func (d *documentTypeDAO) Update(ctx context.Context, dt DocumentType) error {
	err := d.db.WithContext(ctx).Model(&DocumentType{}).
		Where("id = ?", dt.ID).
		Updates(map[string]any{
			"title":             dt.Title,
			"weight_supervisor": dt.WeightSupervisor,
			"weight_committee":  dt.WeightCommittee,
			"display_order":     dt.DisplayOrder,
			"utime":             time.Now().UnixMilli(),
		}).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return ErrDuplicateCode
		}
	}
	return err
}

func (d *documentTypeDAO) Deactivate(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&DocumentType{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active": false,
			"utime":     time.Now().UnixMilli(),
		}).Error
}

func (d *documentTypeDAO) FindByID(ctx context.Context, id int64) (DocumentType, error) {
	var dt DocumentType
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&dt).Error
	return dt, err
}

func (d *documentTypeDAO) FindByIDs(ctx context.Context, ids []int64) ([]DocumentType, error) {
	var res []DocumentType
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (d *documentTypeDAO) List(ctx context.Context, offset, limit int) ([]DocumentType, int64, error) {
	var (
		res   []DocumentType
		total int64
	)
	err := d.db.WithContext(ctx).Model(&DocumentType{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = d.db.WithContext(ctx).
		Order("is_active desc, display_order asc, id asc").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, total, err
}

type DocumentType struct {
	ID               int64  `gorm:"primaryKey;autoIncrement;comment:文档类型自增ID"`
	Code             string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_doc_type_code;comment:类型编码"`
	Title            string `gorm:"type:varchar(255);not null;comment:类型名称"`
	WeightSupervisor int64  `gorm:"type:tinyint unsigned;not null;comment:指导教师评分权重 0-100"`
	WeightCommittee  int64  `gorm:"type:tinyint unsigned;not null;comment:评审委员会评分权重 0-100"`
	DisplayOrder     int64  `gorm:"not null;default:0;comment:展示顺序"`
	IsActive         bool   `gorm:"not null;default:true;comment:是否启用,只停用不删除"`
	Ctime            int64
	Utime            int64
}

func (DocumentType) TableName() string {
	return "document_types"
}
