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

	"github.com/edusphere/fyptrack/internal/evaluation/internal/domain"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/repository"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"github.com/edusphere/fyptrack/internal/submission"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./service.go -package=evaluationmocks -destination=../../mocks/evaluation.mock.go -typed Service

type Service interface {
	// AssignEvaluators 给锁定的提交指派评审教师，幂等
	AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error
	// UnassignEvaluator 评审定稿前移除一名评审教师，连带删掉他未定稿的评分。
	// 移除后如果剩下的人都已定稿，立即触发聚合
	UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error
	// SubmitMark 评审教师打分，定稿前可以反复覆盖。
	// 第一份评分会把提交推进到评审中状态
	SubmitMark(ctx context.Context, submissionID, evaluatorID, score int64) error
	// FinalizeMark 评审教师定稿自己的评分，不可逆。
	// 最后一个定稿会聚合委员会平均分并把提交推进到评审完成
	FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error
	Summary(ctx context.Context, submissionID int64) (domain.Summary, error)
}

type service struct {
	repo          repository.EvaluationRepository
	submissionSvc submission.Service
}

func NewService(repo repository.EvaluationRepository, submissionSvc submission.Service) Service {
	return &service{
		repo:          repo,
		submissionSvc: submissionSvc,
	}
}

func (s *service) AssignEvaluators(ctx context.Context, submissionID int64, evaluatorIDs []int64) error {
	if len(evaluatorIDs) == 0 {
		return xerr.NewValidation("评审教师列表不能为空")
	}
	seen := make(map[int64]struct{}, len(evaluatorIDs))
	deduped := make([]int64, 0, len(evaluatorIDs))
	for _, eid := range evaluatorIDs {
		if eid <= 0 {
			return xerr.NewValidation("评审教师ID %d 不合法", eid)
		}
		if _, ok := seen[eid]; ok {
			continue
		}
		seen[eid] = struct{}{}
		deduped = append(deduped, eid)
	}
	if err := s.checkEvaluable(ctx, submissionID); err != nil {
		return err
	}
	return s.repo.AssignEvaluators(ctx, submissionID, deduped)
}

func (s *service) UnassignEvaluator(ctx context.Context, submissionID, evaluatorID int64) error {
	if err := s.checkEvaluable(ctx, submissionID); err != nil {
		return err
	}
	mark, err := s.repo.FindMark(ctx, submissionID, evaluatorID)
	if err == nil && mark.Finalized {
		return xerr.NewBusiness(xerr.CodeMarkFinalized,
			"评审教师 %d 的评分已定稿，不能移除", evaluatorID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	err = s.repo.UnassignEvaluator(ctx, submissionID, evaluatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NewNotFound("评审教师 %d 未被指派到提交 %d",
			evaluatorID, submissionID)
	}
	if errors.Is(err, dao.ErrMarkFinalized) {
		return xerr.NewBusiness(xerr.CodeMarkFinalized,
			"评审教师 %d 的评分已定稿，不能移除", evaluatorID)
	}
	if err != nil {
		return err
	}
	return s.finalizeIfComplete(ctx, submissionID)
}

func (s *service) SubmitMark(ctx context.Context, submissionID, evaluatorID, score int64) error {
	if score < 0 || score > 100 {
		return xerr.NewValidation("评审评分必须在 0 到 100 之间")
	}
	if err := s.checkEvaluable(ctx, submissionID); err != nil {
		return err
	}
	assigned, err := s.repo.IsAssigned(ctx, submissionID, evaluatorID)
	if err != nil {
		return err
	}
	if !assigned {
		return xerr.NewValidation("评审教师 %d 未被指派到该提交", evaluatorID)
	}
	err = s.repo.UpsertMark(ctx, submissionID, evaluatorID, score)
	if errors.Is(err, dao.ErrMarkFinalized) {
		return xerr.NewBusiness(xerr.CodeMarkFinalized,
			"评分已定稿，不能再修改")
	}
	if err != nil {
		return err
	}
	return s.submissionSvc.MarkEvalInProgress(ctx, submissionID)
}

func (s *service) FinalizeMark(ctx context.Context, submissionID, evaluatorID int64) error {
	err := s.repo.FinalizeMark(ctx, submissionID, evaluatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NewNotFound("评审教师 %d 尚未对提交 %d 打分",
			evaluatorID, submissionID)
	}
	if errors.Is(err, dao.ErrAlreadyFinalized) {
		return xerr.NewConflict("评分已经定稿过了")
	}
	if err != nil {
		return err
	}
	return s.finalizeIfComplete(ctx, submissionID)
}

func (s *service) Summary(ctx context.Context, submissionID int64) (domain.Summary, error) {
	evaluatorIDs, err := s.repo.AssignedEvaluatorIDs(ctx, submissionID)
	if err != nil {
		return domain.Summary{}, err
	}
	marks, err := s.repo.MarksBySubmission(ctx, submissionID)
	if err != nil {
		return domain.Summary{}, err
	}
	var finalized int64
	for _, m := range marks {
		if m.Finalized {
			finalized++
		}
	}
	summary := domain.Summary{
		SubmissionID:   submissionID,
		EvaluatorIDs:   evaluatorIDs,
		AssignedCount:  int64(len(evaluatorIDs)),
		FinalizedCount: finalized,
		Marks:          marks,
	}
	if finalized > 0 {
		avg := domain.CommitteeAverage(marks)
		summary.AverageOfFinalized = &avg
	}
	return summary, nil
}

// finalizeIfComplete 定稿和移除评审教师都可能让剩余评分全部就位，
// 就位时聚合委员会平均分并把提交推进到评审完成
func (s *service) finalizeIfComplete(ctx context.Context, submissionID int64) error {
	summary, err := s.Summary(ctx, submissionID)
	if err != nil {
		return err
	}
	if !summary.AllFinalized() {
		return nil
	}
	return s.submissionSvc.FinalizeEvaluation(ctx, submissionID, *summary.AverageOfFinalized)
}

// checkEvaluable 指派和打分都要求提交已锁定且评审未定稿
func (s *service) checkEvaluable(ctx context.Context, submissionID int64) error {
	sub, err := s.submissionSvc.Detail(ctx, submissionID)
	if err != nil {
		return err
	}
	if !sub.Status.Locked() {
		return xerr.NewBusiness(xerr.CodeNotLocked,
			"提交尚未锁定，不能进入评审流程")
	}
	if sub.Status == submission.SubmissionStatusEvalFinalized {
		return xerr.NewBusiness(xerr.CodeInvalidStatus,
			"评审已定稿，不能再操作")
	}
	return nil
}
