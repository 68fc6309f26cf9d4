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
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrStatusClaimFailed 状态抢占失败：行不存在，或状态已被并发修改。
	// 调用方需要重读一次再决定报什么错
	ErrStatusClaimFailed = errors.New("提交状态抢占失败")
	// ErrDuplicateMark 指导教师评分唯一索引冲突
	ErrDuplicateMark = errors.New("指导教师评分已存在")
	// ErrDuplicateSubmission 版本唯一索引冲突，并发上传同一个版本
	ErrDuplicateSubmission = errors.New("提交版本已存在")
)

func isUniqueConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

type SubmissionDAO interface {
	// Create 首次提交，版本从 1 开始
	Create(ctx context.Context, sub Submission) (int64, error)
	// CreateNextVersion 清掉旧终版的 is_final 并插入新版本，同一事务。
	// 旧版本必须仍处于"要求修改"状态，否则返回 ErrStatusClaimFailed
	CreateNextVersion(ctx context.Context, prev Submission, sub Submission) (int64, error)
	// RequestRevision 1 -> 2
	RequestRevision(ctx context.Context, id int64, feedback string) error
	// Approve 1 -> 3，score 非空时同事务写入指导教师评分
	Approve(ctx context.Context, id int64, reviewedAt int64, score *int64) error
	// CreateSupervisorMark 补录指导教师评分（截止前通过、分数后补的场景）
	CreateSupervisorMark(ctx context.Context, submissionID, score int64) error
	// LockFinal 3 -> 4，按 (project, docType) 抢占终版提交。
	// 返回被锁的提交与是否真的发生了迁移；已锁过返回 locked=false 而不是错误
	LockFinal(ctx context.Context, projectID, docTypeID int64) (Submission, bool, error)
	// MarkEvalInProgress 4 -> 5，幂等
	MarkEvalInProgress(ctx context.Context, id int64) error
	// FinalizeEvaluation 5 -> 6，同时落委员会平均分，幂等
	FinalizeEvaluation(ctx context.Context, id int64, avg decimal.Decimal) error

	FindByID(ctx context.Context, id int64) (Submission, error)
	FindFinal(ctx context.Context, projectID, docTypeID int64) (Submission, error)
	ListByProject(ctx context.Context, projectID int64) ([]Submission, error)
	FindFinalizedByProject(ctx context.Context, projectID int64) ([]Submission, error)
	FindSupervisorMark(ctx context.Context, submissionID int64) (SupervisorMark, error)
	FindSupervisorMarks(ctx context.Context, submissionIDs []int64) ([]SupervisorMark, error)
}

type submissionDAO struct {
	db *egorm.Component
}

func NewSubmissionDAO(db *egorm.Component) SubmissionDAO {
	return &submissionDAO{db: db}
}

func (d *submissionDAO) Create(ctx context.Context, sub Submission) (int64, error) {
	now := time.Now().UnixMilli()
	sub.Version = 1
	sub.IsFinal = true
	sub.Ctime, sub.Utime = now, now
	err := d.db.WithContext(ctx).Create(&sub).Error
	if isUniqueConflict(err) {
		return 0, ErrDuplicateSubmission
	}
	return sub.ID, err
}

func (d *submissionDAO) CreateNextVersion(ctx context.Context, prev Submission, sub Submission) (int64, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		// 抢占旧终版，并发的第二次上传会在这里失败
		res := tx.Model(&Submission{}).
			Where("id = ? AND is_final = ? AND status = ?",
				prev.ID, true, prev.Status).
			Updates(map[string]any{
				"is_final": false,
				"utime":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("旧版本 %d 已被并发处理: %w", prev.ID, ErrStatusClaimFailed)
		}
		sub.Version = prev.Version + 1
		sub.IsFinal = true
		sub.Ctime, sub.Utime = now, now
		if err := tx.Create(&sub).Error; err != nil {
			if isUniqueConflict(err) {
				return ErrDuplicateSubmission
			}
			return err
		}
		return nil
	})
	return sub.ID, err
}

func (d *submissionDAO) RequestRevision(ctx context.Context, id int64, feedback string) error {
	res := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", id, 1).
		Updates(map[string]any{
			"status":                 2,
			"supervisor_feedback":    feedback,
			"supervisor_reviewed_at": time.Now().UnixMilli(),
			"utime":                  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusClaimFailed
	}
	return nil
}

func (d *submissionDAO) Approve(ctx context.Context, id int64, reviewedAt int64, score *int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Submission{}).
			Where("id = ? AND status = ?", id, 1).
			Updates(map[string]any{
				"status":                 3,
				"supervisor_reviewed_at": reviewedAt,
				"utime":                  time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusClaimFailed
		}
		if score == nil {
			return nil
		}
		return d.createMark(tx, id, *score)
	})
}

func (d *submissionDAO) CreateSupervisorMark(ctx context.Context, submissionID, score int64) error {
	return d.createMark(d.db.WithContext(ctx), submissionID, score)
}

func (d *submissionDAO) LockFinal(ctx context.Context, projectID, docTypeID int64) (Submission, bool, error) {
	var sub Submission
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND doc_type_id = ? AND is_final = ?",
			projectID, docTypeID, true).
		First(&sub).Error
	if err != nil {
		return Submission{}, false, err
	}
	if sub.Status != 3 {
		// 还没通过指导教师审阅，或者已经锁过了，都不是错误
		return sub, false, nil
	}
	res := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", sub.ID, 3).
		Updates(map[string]any{
			"status": 4,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return Submission{}, false, res.Error
	}
	// 0 行说明另一轮扫描抢先锁了，幂等返回
	return sub, res.RowsAffected == 1, nil
}

func (d *submissionDAO) MarkEvalInProgress(ctx context.Context, id int64) error {
	res := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", id, 4).
		Updates(map[string]any{
			"status": 5,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// 已经是评审中就算成功
	var sub Submission
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return err
	}
	if sub.Status == 5 {
		return nil
	}
	return ErrStatusClaimFailed
}

func (d *submissionDAO) FinalizeEvaluation(ctx context.Context, id int64, avg decimal.Decimal) error {
	res := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", id, 5).
		Updates(map[string]any{
			"status":              6,
			"committee_avg_score": avg,
			"utime":               time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	var sub Submission
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return err
	}
	if sub.Status == 6 {
		return nil
	}
	return ErrStatusClaimFailed
}

func (d *submissionDAO) FindByID(ctx context.Context, id int64) (Submission, error) {
	var sub Submission
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	return sub, err
}

func (d *submissionDAO) FindFinal(ctx context.Context, projectID, docTypeID int64) (Submission, error) {
	var sub Submission
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND doc_type_id = ? AND is_final = ?",
			projectID, docTypeID, true).
		First(&sub).Error
	return sub, err
}

func (d *submissionDAO) ListByProject(ctx context.Context, projectID int64) ([]Submission, error) {
	var res []Submission
	err := d.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("doc_type_id asc, version desc").
		Find(&res).Error
	return res, err
}

func (d *submissionDAO) FindFinalizedByProject(ctx context.Context, projectID int64) ([]Submission, error) {
	var res []Submission
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND is_final = ? AND status = ?",
			projectID, true, 6).
		Find(&res).Error
	return res, err
}

func (d *submissionDAO) FindSupervisorMark(ctx context.Context, submissionID int64) (SupervisorMark, error) {
	var mark SupervisorMark
	err := d.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&mark).Error
	return mark, err
}

func (d *submissionDAO) FindSupervisorMarks(ctx context.Context, submissionIDs []int64) ([]SupervisorMark, error) {
	var res []SupervisorMark
	err := d.db.WithContext(ctx).Where("submission_id IN ?", submissionIDs).Find(&res).Error
	return res, err
}

func (d *submissionDAO) createMark(tx *gorm.DB, submissionID, score int64) error {
	now := time.Now().UnixMilli()
	mark := SupervisorMark{
		SubmissionID: submissionID,
		Score:        score,
		Ctime:        now,
		Utime:        now,
	}
	err := tx.Create(&mark).Error
	if isUniqueConflict(err) {
		return ErrDuplicateMark
	}
	return err
}

type Submission struct {
	ID                   int64               `gorm:"primaryKey;autoIncrement;comment:提交自增ID"`
	ProjectID            int64               `gorm:"not null;uniqueIndex:uniq_project_doc_version,priority:1;index:idx_project_id;comment:课题ID"`
	DocTypeID            int64               `gorm:"not null;uniqueIndex:uniq_project_doc_version,priority:2;comment:文档类型ID"`
	Version              int64               `gorm:"not null;default:1;uniqueIndex:uniq_project_doc_version,priority:3;comment:版本号,从1开始"`
	Status               int64               `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=待审阅 2=要求修改 3=已通过 4=已锁定 5=评审中 6=评审完成"`
	IsFinal              bool                `gorm:"not null;default:true;comment:是否当前参与评审的版本,每组至多一个"`
	FileRef              string              `gorm:"type:varchar(512);not null;comment:文件引用,核心不解释其内容"`
	UploaderID           int64               `gorm:"not null;comment:上传者ID"`
	SupervisorFeedback   string              `gorm:"type:text;comment:指导教师修改意见"`
	CommitteeAvgScore    decimal.NullDecimal `gorm:"type:decimal(9,4);comment:委员会平均分,定稿时写入"`
	UploadedAt           int64               `gorm:"not null;comment:上传时间,UTC Unix毫秒数"`
	SupervisorReviewedAt *int64              `gorm:"comment:指导教师处理时间"`
	Ctime                int64
	Utime                int64
}

func (Submission) TableName() string {
	return "document_submissions"
}

type SupervisorMark struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:指导教师评分自增ID"`
	SubmissionID int64 `gorm:"not null;uniqueIndex:uniq_submission_id;comment:提交ID,一个版本至多一条"`
	Score        int64 `gorm:"type:tinyint unsigned;not null;comment:分数 0-100"`
	Ctime        int64
	Utime        int64
}

func (SupervisorMark) TableName() string {
	return "supervisor_marks"
}
