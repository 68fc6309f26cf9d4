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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMarkFinalized 评分已定稿，不能再修改
	ErrMarkFinalized = errors.New("评分已定稿")
	// ErrAlreadyFinalized 重复定稿
	ErrAlreadyFinalized = errors.New("评分已经定稿过了")
)

type EvaluationDAO interface {
	// AssignEvaluators 幂等，已指派过的评审教师直接跳过
	AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error
	// UnassignEvaluator 删除指派和对应未定稿的评分。
	// 没有这条指派返回 gorm.ErrRecordNotFound，评分已定稿返回 ErrMarkFinalized
	UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error
	Assignments(ctx context.Context, submissionID int64) ([]SubmissionEvaluator, error)
	IsAssigned(ctx context.Context, submissionID, evaluatorID int64) (bool, error)

	// UpsertMark 定稿前可以反复提交覆盖，定稿后返回 ErrMarkFinalized
	UpsertMark(ctx context.Context, submissionID, evaluatorID, score int64) error
	// FinalizeMark 定稿，不可逆。重复定稿返回 ErrAlreadyFinalized
	FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error
	FindMark(ctx context.Context, submissionID, evaluatorID int64) (EvaluationMark, error)
	MarksBySubmission(ctx context.Context, submissionID int64) ([]EvaluationMark, error)
}

type evaluationDAO struct {
	db *egorm.Component
}

func NewEvaluationDAO(db *egorm.Component) EvaluationDAO {
	return &evaluationDAO{db: db}
}

func (d *evaluationDAO) AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error {
	now := time.Now().UnixMilli()
	assignments := make([]SubmissionEvaluator, 0, len(evaluatorIDs))
	for _, eid := range evaluatorIDs {
		assignments = append(assignments, SubmissionEvaluator{
			SubmissionID: submissionID,
			EvaluatorID:  eid,
			Ctime:        now,
			Utime:        now,
		})
	}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

func (d *evaluationDAO) UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
			Delete(&SubmissionEvaluator{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		err := tx.Where("submission_id = ? AND evaluator_id = ? AND finalized = ?",
			submissionID, evaluatorID, false).
			Delete(&EvaluationMark{}).Error
		if err != nil {
			return err
		}
		// 还留在表里的评分只能是已定稿的，回滚整个移除
		var count int64
		err = tx.Model(&EvaluationMark{}).
			Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrMarkFinalized
		}
		return nil
	})
}

func (d *evaluationDAO) Assignments(ctx context.Context, submissionID int64) ([]SubmissionEvaluator, error) {
	var res []SubmissionEvaluator
	err := d.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *evaluationDAO) IsAssigned(ctx context.Context, submissionID, evaluatorID int64) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&SubmissionEvaluator{}).
		Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
		Count(&count).Error
	return count > 0, err
}

func (d *evaluationDAO) UpsertMark(ctx context.Context, submissionID, evaluatorID, score int64) error {
	now := time.Now().UnixMilli()
	update := func() (int64, error) {
		res := d.db.WithContext(ctx).Model(&EvaluationMark{}).
			Where("submission_id = ? AND evaluator_id = ? AND finalized = ?",
				submissionID, evaluatorID, false).
			Updates(map[string]any{
				"score": score,
				"utime": now,
			})
		return res.RowsAffected, res.Error
	}
	rows, err := update()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}
	var existing EvaluationMark
	err = d.db.WithContext(ctx).
		Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
		First(&existing).Error
	if err == nil {
		return ErrMarkFinalized
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	err = d.db.WithContext(ctx).Create(&EvaluationMark{
		SubmissionID: submissionID,
		EvaluatorID:  evaluatorID,
		Score:        score,
		Ctime:        now,
		Utime:        now,
	}).Error
	if err == nil {
		return nil
	}
	// 并发插入撞了唯一索引，改走一次覆盖更新
	rows, uerr := update()
	if uerr != nil {
		return uerr
	}
	if rows == 1 {
		return nil
	}
	return ErrMarkFinalized
}

func (d *evaluationDAO) FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error {
	res := d.db.WithContext(ctx).Model(&EvaluationMark{}).
		Where("submission_id = ? AND evaluator_id = ? AND finalized = ?",
			submissionID, evaluatorID, false).
		Updates(map[string]any{
			"finalized": true,
			"utime":     time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	var existing EvaluationMark
	err := d.db.WithContext(ctx).
		Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
		First(&existing).Error
	if err != nil {
		return err
	}
	return ErrAlreadyFinalized
}

func (d *evaluationDAO) FindMark(ctx context.Context, submissionID, evaluatorID int64) (EvaluationMark, error) {
	var mark EvaluationMark
	err := d.db.WithContext(ctx).
		Where("submission_id = ? AND evaluator_id = ?", submissionID, evaluatorID).
		First(&mark).Error
	return mark, err
}

func (d *evaluationDAO) MarksBySubmission(ctx context.Context, submissionID int64) ([]EvaluationMark, error) {
	var res []EvaluationMark
	err := d.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

// SubmissionEvaluator 提交与评审教师的指派关系
type SubmissionEvaluator struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:指派自增ID"`
	SubmissionID int64 `gorm:"not null;uniqueIndex:uniq_submission_evaluator,priority:1;comment:提交ID"`
	EvaluatorID  int64 `gorm:"not null;uniqueIndex:uniq_submission_evaluator,priority:2;comment:评审教师ID"`
	Ctime        int64
	Utime        int64
}

func (SubmissionEvaluator) TableName() string {
	return "submission_evaluators"
}

type EvaluationMark struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:评审评分自增ID"`
	SubmissionID int64 `gorm:"not null;uniqueIndex:uniq_submission_evaluator_mark,priority:1;comment:提交ID"`
	EvaluatorID  int64 `gorm:"not null;uniqueIndex:uniq_submission_evaluator_mark,priority:2;comment:评审教师ID"`
	Score        int64 `gorm:"type:tinyint unsigned;not null;comment:分数 0-100"`
	Finalized    bool  `gorm:"not null;default:false;comment:是否已定稿,定稿后不可修改"`
	Ctime        int64
	Utime        int64
}

func (EvaluationMark) TableName() string {
	return "evaluation_marks"
}
