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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/submission"
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/errs"
	"github.com/edusphere/fyptrack/internal/submission/internal/event"
	"github.com/edusphere/fyptrack/internal/submission/internal/repository/dao"
	"github.com/edusphere/fyptrack/internal/submission/internal/web"
	"github.com/edusphere/fyptrack/internal/test"
	testioc "github.com/edusphere/fyptrack/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const studentUID = int64(3001)

// 时间基准固定，批次的截止日期都相对它构造
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type SubmissionTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	q      mq.MQ
	clock  *clockwork.FakeClock
	dao    dao.SubmissionDAO

	svc         submission.Service
	sweepJob    *submission.LockOverdueSubmissionsJob
	deadlineSvc deadline.Service

	// SetupSuite 里准备好的文档类型与批次
	proposalID   int64
	reportID     int64
	futureBatch  int64
	overdueBatch int64
}

func (s *SubmissionTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.q = testioc.InitMQ()
	cache := testioc.InitCache()
	s.clock = clockwork.NewFakeClockAt(baseTime)

	docTypeModule := doctype.InitModule(s.db, cache)
	deadlineModule := deadline.InitModule(s.db, docTypeModule, 15)
	subModule, err := submission.InitModule(s.db, s.q, docTypeModule, deadlineModule, s.clock)
	require.NoError(s.T(), err)
	s.svc = subModule.Svc
	s.sweepJob = subModule.SweepJob
	s.deadlineSvc = deadlineModule.Svc
	s.dao = dao.NewSubmissionDAO(s.db)

	ctx := context.Background()
	s.proposalID, err = docTypeModule.Svc.Create(ctx, doctype.DocumentType{
		Code:             "PROPOSAL",
		Title:            "开题报告",
		WeightSupervisor: 20,
		WeightCommittee:  80,
		DisplayOrder:     1,
	})
	require.NoError(s.T(), err)
	s.reportID, err = docTypeModule.Svc.Create(ctx, doctype.DocumentType{
		Code:             "FINAL_REPORT",
		Title:            "毕业论文终稿",
		WeightSupervisor: 30,
		WeightCommittee:  70,
		DisplayOrder:     2,
	})
	require.NoError(s.T(), err)

	s.futureBatch, err = s.deadlineSvc.CreateBatch(ctx, deadline.DeadlineBatch{
		Name:        "2025 秋季批次",
		AppliesFrom: baseTime,
		Deadlines: []deadline.ProjectDeadline{
			{DocTypeID: s.proposalID, DeadlineDate: baseTime.AddDate(0, 0, 10), SortOrder: 1},
			{DocTypeID: s.reportID, DeadlineDate: baseTime.AddDate(0, 0, 40), SortOrder: 2},
		},
	})
	require.NoError(s.T(), err)
	s.overdueBatch, err = s.deadlineSvc.CreateBatch(ctx, deadline.DeadlineBatch{
		Name:        "2025 春季批次",
		AppliesFrom: baseTime.AddDate(0, -3, 0),
		Deadlines: []deadline.ProjectDeadline{
			{DocTypeID: s.proposalID, DeadlineDate: baseTime.AddDate(0, 0, -30), SortOrder: 1},
			{DocTypeID: s.reportID, DeadlineDate: baseTime.AddDate(0, 0, -10), SortOrder: 2},
		},
	})
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: studentUID,
		}))
	})
	subModule.Hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *SubmissionTestSuite) TearDownSuite() {
	for _, table := range []string{
		"document_submissions", "supervisor_marks",
		"document_types", "deadline_batches",
		"project_deadlines", "project_batches",
	} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *SubmissionTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `document_submissions`").Error
	require.NoError(s.T(), err)
	err = s.db.Exec("TRUNCATE TABLE `supervisor_marks`").Error
	require.NoError(s.T(), err)
}

func (s *SubmissionTestSuite) upload(projectID, docTypeID int64) test.Result[int64] {
	req, err := http.NewRequest(http.MethodPost,
		"/submission/upload", iox.NewJSONReader(web.UploadReq{
			ProjectID: projectID,
			DocTypeID: docTypeID,
			FileRef:   "oss://fyp/doc.pdf",
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[int64]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *SubmissionTestSuite) TestUpload() {
	t := s.T()
	// 首次上传从版本 1 开始
	res := s.upload(8001, s.proposalID)
	require.Zero(t, res.Code)
	id := res.Data
	require.True(t, id > 0)

	sub, err := s.dao.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sub.Version)
	assert.True(t, sub.IsFinal)
	assert.Equal(t, int64(domain.SubmissionStatusPendingSupervisor), sub.Status)
	assert.Equal(t, studentUID, sub.UploaderID)
	assert.Equal(t, baseTime.UnixMilli(), sub.UploadedAt)

	// 待审阅期间重复上传被拒绝
	res = s.upload(8001, s.proposalID)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 要求修改后重新上传，版本 +1，旧版本不再是终版
	err = s.svc.RequestRevision(context.Background(), id, "图表不清晰")
	require.NoError(t, err)
	res = s.upload(8001, s.proposalID)
	require.Zero(t, res.Code)
	newID := res.Data
	require.True(t, newID > id)

	old, err := s.dao.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, old.IsFinal)
	next, err := s.dao.FindByID(context.Background(), newID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Version)
	assert.True(t, next.IsFinal)
}

func (s *SubmissionTestSuite) TestApproveBeforeDeadline() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 8002, s.futureBatch))

	res := s.upload(8002, s.proposalID)
	require.Zero(t, res.Code)
	id := res.Data

	// 截止日期没到，可以先通过、分数后补
	require.NoError(t, s.svc.Approve(ctx, id, nil))
	sub, err := s.dao.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.SubmissionStatusApprovedBySupervisor), sub.Status)
	require.NotNil(t, sub.SupervisorReviewedAt)
	assert.Equal(t, baseTime.UnixMilli(), *sub.SupervisorReviewedAt)

	// 分数补录一次，第二次是重复操作
	require.NoError(t, s.svc.RecordSupervisorScore(ctx, id, 85))
	mark, err := s.dao.FindSupervisorMark(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(85), mark.Score)
	err = s.svc.RecordSupervisorScore(ctx, id, 90)
	require.Error(t, err)
}

func (s *SubmissionTestSuite) TestApproveAfterDeadline() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 8003, s.overdueBatch))

	res := s.upload(8003, s.proposalID)
	require.Zero(t, res.Code)
	id := res.Data

	// 截止日期已过，不带分数不允许通过
	err := s.svc.Approve(ctx, id, nil)
	require.Error(t, err)

	score := int64(78)
	require.NoError(t, s.svc.Approve(ctx, id, &score))
	mark, err := s.dao.FindSupervisorMark(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, score, mark.Score)
}

func (s *SubmissionTestSuite) TestLockForEvaluation() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 8004, s.overdueBatch))

	res := s.upload(8004, s.proposalID)
	require.Zero(t, res.Code)
	id := res.Data
	score := int64(80)
	require.NoError(t, s.svc.Approve(ctx, id, &score))

	// 第一次真的锁，第二次幂等
	locked, err := s.svc.LockForEvaluation(ctx, 8004, s.proposalID)
	require.NoError(t, err)
	assert.True(t, locked)
	locked, err = s.svc.LockForEvaluation(ctx, 8004, s.proposalID)
	require.NoError(t, err)
	assert.False(t, locked)

	sub, err := s.dao.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.SubmissionStatusLockedForEval), sub.Status)

	// 锁定之后不允许再上传新版本
	res = s.upload(8004, s.proposalID)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 没有任何提交的组合没有东西可锁，不是错误
	locked, err = s.svc.LockForEvaluation(ctx, 8004, s.reportID)
	require.NoError(t, err)
	assert.False(t, locked)
}

func (s *SubmissionTestSuite) TestSweepLocksOverdueSubmissions() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 8005, s.overdueBatch))

	approved := s.upload(8005, s.proposalID)
	require.Zero(t, approved.Code)
	score := int64(88)
	require.NoError(t, s.svc.Approve(ctx, approved.Data, &score))

	// 还在待审阅的提交不会被扫描锁定
	pending := s.upload(8005, s.reportID)
	require.Zero(t, pending.Code)

	consumer, err := s.q.Consumer(event.SubmissionLockedEvent{}.Topic(), "test_sweep")
	require.NoError(t, err)

	require.NoError(t, s.sweepJob.Run(ctx))

	sub, err := s.dao.FindByID(ctx, approved.Data)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.SubmissionStatusLockedForEval), sub.Status)
	notYet, err := s.dao.FindByID(ctx, pending.Data)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.SubmissionStatusPendingSupervisor), notYet.Status)

	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	msg, err := consumer.Consume(cctx)
	require.NoError(t, err)
	var evt event.SubmissionLockedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, approved.Data, evt.SubmissionID)
	assert.Equal(t, int64(8005), evt.ProjectID)

	// 再跑一轮是幂等的
	require.NoError(t, s.sweepJob.Run(ctx))
	sub, err = s.dao.FindByID(ctx, approved.Data)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.SubmissionStatusLockedForEval), sub.Status)
}

func TestSubmissionModule(t *testing.T) {
	suite.Run(t, new(SubmissionTestSuite))
}
