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
	"sort"
	"strings"

	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/evaluation"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
	"github.com/edusphere/fyptrack/internal/result/internal/event"
	"github.com/edusphere/fyptrack/internal/result/internal/repository"
	"github.com/edusphere/fyptrack/internal/result/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/submission"
	"github.com/gotomicro/ego/core/elog"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./service.go -package=resultmocks -destination=../../mocks/result.mock.go -typed Service

type Service interface {
	// Compute 汇总课题下全部评审完成的提交，算出最终成绩并落库。
	// 成绩只算一次，重复计算返回 ConflictError
	Compute(ctx context.Context, projectID int64) (domain.FinalResult, error)
	// Release 发布成绩，单向，记录发布人。发布后按课题成员逐人投递事件
	Release(ctx context.Context, projectID, releasedBy int64) error
	Detail(ctx context.Context, projectID int64) (domain.FinalResult, error)
	// ReleasedDetail 只返回已发布的成绩，学生端用
	ReleasedDetail(ctx context.Context, projectID int64) (domain.FinalResult, error)
	List(ctx context.Context, offset, limit int) ([]domain.FinalResult, int64, error)
}

// MemberProvider 课题成员名单，发布事件按成员逐人投递
type MemberProvider interface {
	ProjectMembers(ctx context.Context, projectID int64) ([]int64, error)
}

type service struct {
	repo          repository.ResultRepository
	submissionSvc submission.Service
	evaluationSvc evaluation.Service
	docTypeSvc    doctype.Service
	deadlineSvc   deadline.Service
	members       MemberProvider
	producer      *event.ResultEventProducer
	clock         clockwork.Clock
	logger        *elog.Component
}

func NewService(repo repository.ResultRepository,
	submissionSvc submission.Service,
	evaluationSvc evaluation.Service,
	docTypeSvc doctype.Service,
	deadlineSvc deadline.Service,
	members MemberProvider,
	producer *event.ResultEventProducer,
	clock clockwork.Clock) Service {
	return &service{
		repo:          repo,
		submissionSvc: submissionSvc,
		evaluationSvc: evaluationSvc,
		docTypeSvc:    docTypeSvc,
		deadlineSvc:   deadlineSvc,
		members:       members,
		producer:      producer,
		clock:         clock,
		logger:        elog.DefaultLogger,
	}
}

func (s *service) Compute(ctx context.Context, projectID int64) (domain.FinalResult, error) {
	if projectID <= 0 {
		return domain.FinalResult{}, xerr.NewValidation("课题ID不合法")
	}
	required, err := s.requiredDocTypes(ctx, projectID)
	if err != nil {
		return domain.FinalResult{}, err
	}
	finalized, err := s.collectFinalized(ctx, projectID, required)
	if err != nil {
		return domain.FinalResult{}, err
	}
	entries, err := s.buildBreakdown(ctx, finalized)
	if err != nil {
		return domain.FinalResult{}, err
	}
	res := domain.FinalResult{
		ProjectID:  projectID,
		FinalScore: domain.FinalScore(entries),
		Breakdown: domain.Breakdown{
			SchemaVersion: domain.BreakdownSchemaVersion,
			Entries:       entries,
		},
	}
	id, err := s.repo.Create(ctx, res)
	if errors.Is(err, dao.ErrDuplicateResult) {
		return domain.FinalResult{}, xerr.NewConflict("课题 %d 的最终成绩已计算过", projectID)
	}
	if err != nil {
		return domain.FinalResult{}, err
	}
	res.ID = id
	return res, nil
}

func (s *service) Release(ctx context.Context, projectID, releasedBy int64) error {
	releasedAt := s.clock.Now()
	err := s.repo.Release(ctx, projectID, releasedBy, releasedAt)
	if errors.Is(err, dao.ErrReleaseClaimFailed) {
		_, ferr := s.repo.FindByProject(ctx, projectID)
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			return xerr.NewNotFound("课题 %d 还没有计算最终成绩", projectID)
		}
		if ferr != nil {
			return ferr
		}
		return xerr.NewConflict("课题 %d 的成绩已经发布过了", projectID)
	}
	if err != nil {
		return err
	}
	s.notifyMembers(ctx, projectID, releasedAt.UnixMilli())
	return nil
}

func (s *service) Detail(ctx context.Context, projectID int64) (domain.FinalResult, error) {
	res, err := s.repo.FindByProject(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FinalResult{}, xerr.NewNotFound("课题 %d 还没有最终成绩", projectID)
	}
	return res, err
}

func (s *service) ReleasedDetail(ctx context.Context, projectID int64) (domain.FinalResult, error) {
	res, err := s.Detail(ctx, projectID)
	if err != nil {
		return domain.FinalResult{}, err
	}
	if !res.Released {
		// 未发布的成绩对学生不可见，与不存在同样处理
		return domain.FinalResult{}, xerr.NewNotFound("课题 %d 还没有发布成绩", projectID)
	}
	return res, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.FinalResult, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

// requiredDocTypes 课题的必交文档集合，来自指派的截止日期批次
func (s *service) requiredDocTypes(ctx context.Context, projectID int64) (map[int64]struct{}, error) {
	batch, err := s.deadlineSvc.BatchForProject(ctx, projectID)
	var ne *xerr.NotFoundError
	if errors.As(err, &ne) {
		return nil, xerr.NewBusiness(xerr.CodeNoDeadlineBatch,
			"课题 %d 未指派截止日期批次", projectID)
	}
	if err != nil {
		return nil, err
	}
	required := make(map[int64]struct{}, len(batch.Deadlines))
	for _, dl := range batch.Deadlines {
		required[dl.DocTypeID] = struct{}{}
	}
	return required, nil
}

// collectFinalized 必交文档里全部评审完成的终版提交。
// 有锁定或评审中的提交，或者某类必交文档还没评审完成，都不能计算
func (s *service) collectFinalized(ctx context.Context, projectID int64,
	required map[int64]struct{}) ([]submission.Submission, error) {
	subs, err := s.submissionSvc.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var finalized []submission.Submission
	var anyFinalized bool
	for _, sub := range subs {
		if !sub.IsFinal {
			continue
		}
		switch sub.Status {
		case submission.SubmissionStatusEvalFinalized:
			anyFinalized = true
			if _, ok := required[sub.DocTypeID]; ok {
				finalized = append(finalized, sub)
			}
		case submission.SubmissionStatusLockedForEval, submission.SubmissionStatusEvalInProgress:
			if _, ok := required[sub.DocTypeID]; ok {
				return nil, xerr.NewBusiness(xerr.CodeIncompleteEvaluations,
					"提交 %d 的评审还没有全部定稿", sub.ID)
			}
		default:
		}
	}
	// 完全没有评审完成的提交和必交文档缺席是两种不同的失败
	if !anyFinalized {
		return nil, xerr.NewBusiness(xerr.CodeNoFinalizedSubmissions,
			"课题 %d 没有评审完成的提交", projectID)
	}
	if err := s.checkRequiredCovered(ctx, required, finalized); err != nil {
		return nil, err
	}
	return finalized, nil
}

// checkRequiredCovered 任何一类必交文档缺席都不出部分成绩，报错时点名缺的文档
func (s *service) checkRequiredCovered(ctx context.Context,
	required map[int64]struct{}, finalized []submission.Submission) error {
	covered := make(map[int64]struct{}, len(finalized))
	for _, sub := range finalized {
		covered[sub.DocTypeID] = struct{}{}
	}
	var missing []int64
	for id := range required {
		if _, ok := covered[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	docTypes, err := s.docTypeSvc.ByIDs(ctx, missing)
	if err != nil {
		return err
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	titles := make([]string, 0, len(missing))
	for _, id := range missing {
		titles = append(titles, docTypes[id].Title)
	}
	return xerr.NewBusiness(xerr.CodeIncompleteEvaluations,
		"以下文档还没有评审完成：%s", strings.Join(titles, "、"))
}

func (s *service) buildBreakdown(ctx context.Context,
	finalized []submission.Submission) ([]domain.BreakdownEntry, error) {
	ids := make([]int64, 0, len(finalized))
	docTypeIDs := make([]int64, 0, len(finalized))
	for _, sub := range finalized {
		ids = append(ids, sub.ID)
		docTypeIDs = append(docTypeIDs, sub.DocTypeID)
	}
	var (
		marks    map[int64]submission.SupervisorMark
		docTypes map[int64]doctype.DocumentType
		eg       errgroup.Group
	)
	eg.Go(func() error {
		var err error
		marks, err = s.submissionSvc.SupervisorScores(ctx, ids)
		return err
	})
	eg.Go(func() error {
		var err error
		docTypes, err = s.docTypeSvc.ByIDs(ctx, docTypeIDs)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	entries := make([]domain.BreakdownEntry, 0, len(finalized))
	for _, sub := range finalized {
		mark, ok := marks[sub.ID]
		if !ok {
			return nil, xerr.NewBusiness(xerr.CodeSupervisorMarksRequired,
				"提交 %d 缺少指导教师评分", sub.ID)
		}
		dt, ok := docTypes[sub.DocTypeID]
		if !ok {
			return nil, xerr.NewValidation("文档类型 %d 不存在", sub.DocTypeID)
		}
		// 评审完成的提交一定写入过平均分，这里兜底取零
		committeeAvg := decimal.Zero
		if sub.CommitteeAvgScore != nil {
			committeeAvg = *sub.CommitteeAvgScore
		}
		summary, err := s.evaluationSvc.Summary(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.BreakdownEntry{
			DocTypeID:        dt.ID,
			DocTypeCode:      dt.Code,
			DocTypeTitle:     dt.Title,
			SubmissionID:     sub.ID,
			SupervisorScore:  mark.Score,
			CommitteeAvg:     committeeAvg,
			EvaluatorCount:   summary.FinalizedCount,
			WeightSupervisor: dt.WeightSupervisor,
			WeightCommittee:  dt.WeightCommittee,
			WeightedScore: domain.WeightedScore(mark.Score, committeeAvg,
				dt.WeightSupervisor, dt.WeightCommittee),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DocTypeID < entries[j].DocTypeID
	})
	return entries, nil
}

// notifyMembers 发布事件投递失败只记日志，发布本身已经生效
func (s *service) notifyMembers(ctx context.Context, projectID, releasedAt int64) {
	res, err := s.repo.FindByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("读取已发布成绩失败",
			elog.FieldErr(err),
			elog.Int64("projectID", projectID))
		return
	}
	members, err := s.members.ProjectMembers(ctx, projectID)
	if err != nil {
		s.logger.Error("获取课题成员失败",
			elog.FieldErr(err),
			elog.Int64("projectID", projectID))
		return
	}
	for _, mid := range members {
		evt := event.ResultReleasedEvent{
			ProjectID:  projectID,
			MemberID:   mid,
			FinalScore: res.FinalScore.String(),
			ReleasedAt: releasedAt,
		}
		if perr := s.producer.ProduceReleased(ctx, evt); perr != nil {
			s.logger.Error("发送成绩发布事件失败",
				elog.FieldErr(perr),
				elog.Int64("projectID", projectID),
				elog.Int64("memberID", mid))
		}
	}
}
