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

	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/event"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./service.go -package=submissionmocks -destination=../../mocks/submission.mock.go -typed Service

type Service interface {
	// Upload 首次提交走版本 1，被要求修改后重新提交走版本 +1。
	// 其余状态下重复上传返回 DUPLICATE_SUBMISSION，已锁定返回 SUBMISSION_LOCKED
	Upload(ctx context.Context, sub domain.Submission) (int64, error)
	RequestRevision(ctx context.Context, submissionID int64, feedback string) error
	// Approve 截止日期已过时必须携带分数，否则返回 SUPERVISOR_MARKS_REQUIRED
	Approve(ctx context.Context, submissionID int64, score *int64) error
	// RecordSupervisorScore 补录指导教师评分，审阅通过之后、评审定稿之前都可以
	RecordSupervisorScore(ctx context.Context, submissionID int64, score int64) error
	// LockForEvaluation 锁定课题下某类文档的终版提交，幂等。
	// 返回是否真的发生了锁定，没有可锁的提交不算错误
	LockForEvaluation(ctx context.Context, projectID, docTypeID int64) (bool, error)
	MarkEvalInProgress(ctx context.Context, submissionID int64) error
	FinalizeEvaluation(ctx context.Context, submissionID int64, committeeAvg decimal.Decimal) error

	Detail(ctx context.Context, submissionID int64) (domain.Submission, error)
	FinalDetail(ctx context.Context, projectID, docTypeID int64) (domain.Submission, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Submission, error)
	// FinalizedByProject 课题下全部评审完成的终版提交，计算最终成绩用
	FinalizedByProject(ctx context.Context, projectID int64) ([]domain.Submission, error)
	SupervisorScore(ctx context.Context, submissionID int64) (domain.SupervisorMark, error)
	SupervisorScores(ctx context.Context, submissionIDs []int64) (map[int64]domain.SupervisorMark, error)
}

type service struct {
	repo        repository.SubmissionRepository
	docTypeSvc  doctype.Service
	deadlineSvc deadline.Service
	producer    *event.SubmissionEventProducer
	clock       clockwork.Clock
	logger      *elog.Component
}

func NewService(repo repository.SubmissionRepository,
	docTypeSvc doctype.Service,
	deadlineSvc deadline.Service,
	producer *event.SubmissionEventProducer,
	clock clockwork.Clock) Service {
	return &service{
		repo:        repo,
		docTypeSvc:  docTypeSvc,
		deadlineSvc: deadlineSvc,
		producer:    producer,
		clock:       clock,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Upload(ctx context.Context, sub domain.Submission) (int64, error) {
	if sub.ProjectID <= 0 || sub.DocTypeID <= 0 || sub.UploaderID <= 0 {
		return 0, xerr.NewValidation("课题、文档类型和上传者都不能为空")
	}
	if strings.TrimSpace(sub.FileRef) == "" {
		return 0, xerr.NewValidation("文件引用不能为空")
	}
	if err := s.checkDocType(ctx, sub.DocTypeID); err != nil {
		return 0, err
	}
	sub.Status = domain.SubmissionStatusPendingSupervisor
	sub.UploadedAt = s.clock.Now()

	prev, err := s.repo.FindFinal(ctx, sub.ProjectID, sub.DocTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		id, err := s.repo.Create(ctx, sub)
		if errors.Is(err, dao.ErrDuplicateSubmission) {
			return 0, xerr.NewBusiness(xerr.CodeDuplicateSubmission,
				"课题 %d 已存在该类文档的提交", sub.ProjectID)
		}
		return id, err
	}
	if err != nil {
		return 0, err
	}
	if prev.Status.Locked() {
		return 0, xerr.NewBusiness(xerr.CodeSubmissionLocked,
			"提交已锁定进入评审，不能再上传新版本")
	}
	if prev.Status != domain.SubmissionStatusRevisionRequested {
		return 0, xerr.NewBusiness(xerr.CodeDuplicateSubmission,
			"当前版本尚未被要求修改，不能重复上传")
	}
	id, err := s.repo.CreateNextVersion(ctx, prev, sub)
	if errors.Is(err, dao.ErrStatusClaimFailed) ||
		errors.Is(err, dao.ErrDuplicateSubmission) {
		return 0, xerr.NewBusiness(xerr.CodeDuplicateSubmission,
			"重新提交已被并发处理，请刷新后重试")
	}
	return id, err
}

func (s *service) RequestRevision(ctx context.Context, submissionID int64, feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return xerr.NewValidation("要求修改必须附带反馈意见")
	}
	sub, err := s.Detail(ctx, submissionID)
	if err != nil {
		return err
	}
	err = s.repo.RequestRevision(ctx, submissionID, feedback)
	if errors.Is(err, dao.ErrStatusClaimFailed) {
		return s.claimFailure(ctx, submissionID, domain.SubmissionStatusRevisionRequested)
	}
	if err != nil {
		return err
	}
	evt := event.RevisionRequestedEvent{
		SubmissionID: sub.ID,
		ProjectID:    sub.ProjectID,
		DocTypeID:    sub.DocTypeID,
		Feedback:     feedback,
	}
	if perr := s.producer.ProduceRevisionRequested(ctx, evt); perr != nil {
		s.logger.Error("发送要求修改事件失败",
			elog.FieldErr(perr),
			elog.Int64("submissionID", sub.ID))
	}
	return nil
}

func (s *service) Approve(ctx context.Context, submissionID int64, score *int64) error {
	if score != nil && (*score < 0 || *score > 100) {
		return xerr.NewValidation("指导教师评分必须在 0 到 100 之间")
	}
	sub, err := s.Detail(ctx, submissionID)
	if err != nil {
		return err
	}
	passed, err := s.deadlinePassed(ctx, sub.ProjectID, sub.DocTypeID)
	if err != nil {
		return err
	}
	if passed && score == nil {
		return xerr.NewBusiness(xerr.CodeSupervisorMarksRequired,
			"截止日期已过，审阅通过时必须同时给出指导教师评分")
	}
	err = s.repo.Approve(ctx, submissionID, s.clock.Now(), score)
	if errors.Is(err, dao.ErrStatusClaimFailed) {
		return s.claimFailure(ctx, submissionID, domain.SubmissionStatusApprovedBySupervisor)
	}
	if errors.Is(err, dao.ErrDuplicateMark) {
		return xerr.NewConflict("提交 %d 的指导教师评分已存在", submissionID)
	}
	return err
}

func (s *service) RecordSupervisorScore(ctx context.Context, submissionID int64, score int64) error {
	if score < 0 || score > 100 {
		return xerr.NewValidation("指导教师评分必须在 0 到 100 之间")
	}
	sub, err := s.Detail(ctx, submissionID)
	if err != nil {
		return err
	}
	switch sub.Status {
	case domain.SubmissionStatusPendingSupervisor, domain.SubmissionStatusRevisionRequested:
		return xerr.NewBusiness(xerr.CodeInvalidStatus,
			"提交尚未通过审阅，不能录入指导教师评分")
	case domain.SubmissionStatusEvalFinalized:
		return xerr.NewBusiness(xerr.CodeInvalidStatus,
			"评审已定稿，不能再录入指导教师评分")
	default:
	}
	err = s.repo.CreateSupervisorMark(ctx, submissionID, score)
	if errors.Is(err, dao.ErrDuplicateMark) {
		return xerr.NewConflict("提交 %d 的指导教师评分已存在", submissionID)
	}
	return err
}

func (s *service) LockForEvaluation(ctx context.Context, projectID, docTypeID int64) (bool, error) {
	sub, locked, err := s.repo.LockFinal(ctx, projectID, docTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 课题没有这类文档的提交，没有东西可锁
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !locked {
		return false, nil
	}
	evt := event.SubmissionLockedEvent{
		SubmissionID: sub.ID,
		ProjectID:    sub.ProjectID,
		DocTypeID:    sub.DocTypeID,
	}
	if dl, derr := s.deadlineSvc.DeadlineFor(ctx, projectID, docTypeID); derr == nil {
		evt.Deadline = dl.UnixMilli()
	}
	if perr := s.producer.ProduceLocked(ctx, evt); perr != nil {
		s.logger.Error("发送锁定事件失败",
			elog.FieldErr(perr),
			elog.Int64("submissionID", sub.ID))
	}
	return true, nil
}

func (s *service) MarkEvalInProgress(ctx context.Context, submissionID int64) error {
	err := s.repo.MarkEvalInProgress(ctx, submissionID)
	if errors.Is(err, dao.ErrStatusClaimFailed) {
		return s.claimFailure(ctx, submissionID, domain.SubmissionStatusEvalInProgress)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NewNotFound("提交 %d 不存在", submissionID)
	}
	return err
}

func (s *service) FinalizeEvaluation(ctx context.Context, submissionID int64, committeeAvg decimal.Decimal) error {
	err := s.repo.FinalizeEvaluation(ctx, submissionID, committeeAvg)
	if errors.Is(err, dao.ErrStatusClaimFailed) {
		return s.claimFailure(ctx, submissionID, domain.SubmissionStatusEvalFinalized)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NewNotFound("提交 %d 不存在", submissionID)
	}
	return err
}

func (s *service) Detail(ctx context.Context, submissionID int64) (domain.Submission, error) {
	sub, err := s.repo.FindByID(ctx, submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Submission{}, xerr.NewNotFound("提交 %d 不存在", submissionID)
	}
	return sub, err
}

func (s *service) FinalDetail(ctx context.Context, projectID, docTypeID int64) (domain.Submission, error) {
	sub, err := s.repo.FindFinal(ctx, projectID, docTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Submission{}, xerr.NewNotFound(
			"课题 %d 没有文档类型 %d 的提交", projectID, docTypeID)
	}
	return sub, err
}

func (s *service) ListByProject(ctx context.Context, projectID int64) ([]domain.Submission, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *service) FinalizedByProject(ctx context.Context, projectID int64) ([]domain.Submission, error) {
	return s.repo.FindFinalizedByProject(ctx, projectID)
}

func (s *service) SupervisorScore(ctx context.Context, submissionID int64) (domain.SupervisorMark, error) {
	mark, err := s.repo.FindSupervisorMark(ctx, submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SupervisorMark{}, xerr.NewNotFound(
			"提交 %d 没有指导教师评分", submissionID)
	}
	return mark, err
}

func (s *service) SupervisorScores(ctx context.Context, submissionIDs []int64) (map[int64]domain.SupervisorMark, error) {
	return s.repo.FindSupervisorMarks(ctx, submissionIDs)
}

func (s *service) checkDocType(ctx context.Context, docTypeID int64) error {
	docTypes, err := s.docTypeSvc.ByIDs(ctx, []int64{docTypeID})
	if err != nil {
		return err
	}
	dt, ok := docTypes[docTypeID]
	if !ok {
		return xerr.NewValidation("文档类型 %d 不存在", docTypeID)
	}
	if !dt.IsActive {
		return xerr.NewValidation("文档类型 %s 已停用", dt.Title)
	}
	return nil
}

func (s *service) deadlinePassed(ctx context.Context, projectID, docTypeID int64) (bool, error) {
	dl, err := s.deadlineSvc.DeadlineFor(ctx, projectID, docTypeID)
	if err != nil {
		// 没有指派批次或批次里没有这类文档，视作截止日期未到
		var nf *xerr.NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return s.clock.Now().After(dl), nil
}

// claimFailure 状态抢占失败后重读一次，根据当前状态报更准确的错误
func (s *service) claimFailure(ctx context.Context, submissionID int64, target domain.SubmissionStatus) error {
	sub, err := s.repo.FindByID(ctx, submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NewNotFound("提交 %d 不存在", submissionID)
	}
	if err != nil {
		return err
	}
	if sub.Status.Locked() && !target.Locked() {
		return xerr.NewBusiness(xerr.CodeSubmissionLocked,
			"提交已锁定进入评审，不能再审阅")
	}
	if target.Locked() && !sub.Status.Locked() {
		return xerr.NewBusiness(xerr.CodeNotLocked,
			"提交尚未锁定，不能进入评审流程")
	}
	return xerr.NewBusiness(xerr.CodeInvalidStatus,
		"提交当前状态 %d 不允许该操作", sub.Status)
}
