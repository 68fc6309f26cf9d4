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
	"github.com/edusphere/fyptrack/internal/evaluation"
	"github.com/edusphere/fyptrack/internal/result"
	"github.com/edusphere/fyptrack/internal/result/internal/errs"
	"github.com/edusphere/fyptrack/internal/result/internal/event"
	"github.com/edusphere/fyptrack/internal/result/internal/web"
	"github.com/edusphere/fyptrack/internal/submission"
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

const committeeUID = int64(9001)

var releasedAt = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

type ResultTestSuite struct {
	suite.Suite
	server      *egin.Component
	adminServer *egin.Component
	db          *egorm.Component
	q           mq.MQ

	svc         result.Service
	subSvc      submission.Service
	evalSvc     evaluation.Service
	deadlineSvc deadline.Service

	proposalID int64
	reportID   int64
	midtermID  int64
	batchID    int64
}

func (s *ResultTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.q = testioc.InitMQ()
	cache := testioc.InitCache()
	clock := clockwork.NewFakeClockAt(releasedAt)

	docTypeModule := doctype.InitModule(s.db, cache)
	deadlineModule := deadline.InitModule(s.db, docTypeModule, 15)
	subModule, err := submission.InitModule(s.db, s.q, docTypeModule, deadlineModule, clock)
	require.NoError(s.T(), err)
	evalModule := evaluation.InitModule(s.db, subModule)
	resModule, err := result.InitModule(s.db, s.q, subModule, evalModule, docTypeModule, deadlineModule, clock)
	require.NoError(s.T(), err)
	s.svc = resModule.Svc
	s.subSvc = subModule.Svc
	s.evalSvc = evalModule.Svc
	s.deadlineSvc = deadlineModule.Svc

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
	// 中期检查不在批次的必交文档里
	s.midtermID, err = docTypeModule.Svc.Create(ctx, doctype.DocumentType{
		Code:             "MIDTERM_REPORT",
		Title:            "中期检查报告",
		WeightSupervisor: 50,
		WeightCommittee:  50,
		DisplayOrder:     3,
	})
	require.NoError(s.T(), err)

	// 所有课题共用一个批次，必交文档为开题报告和终稿
	s.batchID, err = s.deadlineSvc.CreateBatch(ctx, deadline.DeadlineBatch{
		Name:        "2025 秋季批次",
		AppliesFrom: releasedAt.AddDate(0, -2, 0),
		Deadlines: []deadline.ProjectDeadline{
			{DocTypeID: s.proposalID, DeadlineDate: releasedAt.AddDate(0, 0, 10), SortOrder: 1},
			{DocTypeID: s.reportID, DeadlineDate: releasedAt.AddDate(0, 0, 40), SortOrder: 2},
		},
	})
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	resModule.Hdl.PrivateRoutes(server.Engine)
	s.server = server

	adminServer := egin.Load("server").Build()
	adminServer.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: committeeUID,
		}))
	})
	resModule.AdminHdl.PrivateRoutes(adminServer.Engine)
	s.adminServer = adminServer
}

func (s *ResultTestSuite) TearDownSuite() {
	for _, table := range []string{
		"document_submissions", "supervisor_marks",
		"submission_evaluators", "evaluation_marks",
		"final_results", "document_types",
		"deadline_batches", "project_deadlines", "project_batches",
	} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *ResultTestSuite) TearDownTest() {
	for _, table := range []string{
		"document_submissions", "supervisor_marks",
		"submission_evaluators", "evaluation_marks",
		"final_results",
	} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

// finalizedSubmission 把一份提交一路推到评审完成
func (s *ResultTestSuite) finalizedSubmission(projectID, docTypeID, uploaderID,
	supScore int64, committeeScores []int64) int64 {
	t := s.T()
	ctx := context.Background()
	id, err := s.subSvc.Upload(ctx, submission.Submission{
		ProjectID:  projectID,
		DocTypeID:  docTypeID,
		FileRef:    "oss://fyp/doc.pdf",
		UploaderID: uploaderID,
	})
	require.NoError(t, err)
	require.NoError(t, s.subSvc.Approve(ctx, id, &supScore))
	locked, err := s.subSvc.LockForEvaluation(ctx, projectID, docTypeID)
	require.NoError(t, err)
	require.True(t, locked)

	evaluators := make([]int64, 0, len(committeeScores))
	for i := range committeeScores {
		evaluators = append(evaluators, int64(6001+i))
	}
	require.NoError(t, s.evalSvc.AssignEvaluators(ctx, id, evaluators))
	for i, score := range committeeScores {
		require.NoError(t, s.evalSvc.SubmitMark(ctx, id, evaluators[i], score))
	}
	for _, eid := range evaluators {
		require.NoError(t, s.evalSvc.FinalizeMark(ctx, id, eid))
	}
	return id
}

func (s *ResultTestSuite) compute(projectID int64) test.Result[web.FinalResult] {
	req, err := http.NewRequest(http.MethodPost,
		"/result/compute", iox.NewJSONReader(web.ProjectReq{ProjectID: projectID}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.FinalResult]()
	s.adminServer.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *ResultTestSuite) release(projectID int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/result/release", iox.NewJSONReader(web.ProjectReq{ProjectID: projectID}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.adminServer.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *ResultTestSuite) studentDetail(projectID int64) test.Result[web.FinalResult] {
	req, err := http.NewRequest(http.MethodPost,
		"/result/detail", iox.NewJSONReader(web.ProjectReq{ProjectID: projectID}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.FinalResult]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *ResultTestSuite) TestCompute() {
	t := s.T()
	ctx := context.Background()
	const projectID = int64(7001)
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, projectID, s.batchID))
	// 开题 20/80：导师 80，委员会 (85+95)/2=90 → 88
	proposalSub := s.finalizedSubmission(projectID, s.proposalID, 3001, 80, []int64{85, 95})
	// 终稿 30/70：导师 90，委员会 90 → 90
	s.finalizedSubmission(projectID, s.reportID, 3001, 90, []int64{90})

	res := s.compute(projectID)
	require.Zero(t, res.Code)
	assert.Equal(t, "89", res.Data.FinalScore)
	assert.False(t, res.Data.Released)
	require.Len(t, res.Data.Breakdown, 2)
	assert.Equal(t, "PROPOSAL", res.Data.Breakdown[0].DocTypeCode)
	assert.Equal(t, proposalSub, res.Data.Breakdown[0].SubmissionID)
	assert.Equal(t, "88", res.Data.Breakdown[0].WeightedScore)
	assert.Equal(t, "90", res.Data.Breakdown[0].CommitteeAvg)
	assert.Equal(t, int64(80), res.Data.Breakdown[0].SupervisorScore)
	assert.Equal(t, int64(2), res.Data.Breakdown[0].EvaluatorCount)
	assert.Equal(t, "FINAL_REPORT", res.Data.Breakdown[1].DocTypeCode)
	assert.Equal(t, "90", res.Data.Breakdown[1].WeightedScore)
	assert.Equal(t, int64(1), res.Data.Breakdown[1].EvaluatorCount)

	// 已经算过的课题再算一次报冲突
	res = s.compute(projectID)
	assert.Equal(t, errs.Conflict.Code, res.Code)
}

func (s *ResultTestSuite) TestComputeIncomplete() {
	t := s.T()
	ctx := context.Background()

	// 没指派批次的课题无从确定必交文档
	res := s.compute(7100)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 指派了批次但没有任何定稿提交
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 7101, s.batchID))
	res = s.compute(7101)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 有提交但评审还没完成
	const projectID = int64(7102)
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, projectID, s.batchID))
	id, err := s.subSvc.Upload(ctx, submission.Submission{
		ProjectID:  projectID,
		DocTypeID:  s.proposalID,
		FileRef:    "oss://fyp/doc.pdf",
		UploaderID: 3001,
	})
	require.NoError(t, err)
	score := int64(80)
	require.NoError(t, s.subSvc.Approve(ctx, id, &score))
	locked, err := s.subSvc.LockForEvaluation(ctx, projectID, s.proposalID)
	require.NoError(t, err)
	require.True(t, locked)

	res = s.compute(projectID)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 开题评审完成但终稿还没交，不出部分成绩
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 7103, s.batchID))
	s.finalizedSubmission(7103, s.proposalID, 3001, 80, []int64{90})
	res = s.compute(7103)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)
	assert.Contains(t, res.Msg, "毕业论文终稿")

	// 只有非必交文档评审完成，按必交文档缺席点名，而不是当成没有提交
	require.NoError(t, s.deadlineSvc.AssignProject(ctx, 7104, s.batchID))
	s.finalizedSubmission(7104, s.midtermID, 3001, 85, []int64{90})
	res = s.compute(7104)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)
	assert.Contains(t, res.Msg, "开题报告")
	assert.Contains(t, res.Msg, "毕业论文终稿")
}

func (s *ResultTestSuite) TestRelease() {
	t := s.T()
	const projectID = int64(7201)
	const memberA = int64(3001)
	const memberB = int64(3002)
	require.NoError(t, s.deadlineSvc.AssignProject(context.Background(), projectID, s.batchID))
	// 两位学生分别上传过文档，发布时两人都要收到通知
	s.finalizedSubmission(projectID, s.proposalID, memberA, 80, []int64{90})
	s.finalizedSubmission(projectID, s.reportID, memberB, 90, []int64{80, 90})

	require.Zero(t, s.compute(projectID).Code)

	// 发布前学生看不到成绩
	res := s.studentDetail(projectID)
	assert.Equal(t, errs.NotFound.Code, res.Code)

	consumer, err := s.q.Consumer(event.ResultReleasedEvent{}.Topic(), "test_release")
	require.NoError(t, err)

	require.Zero(t, s.release(projectID).Code)

	// 发布后学生可以查询，发布人和时间都有记录
	res = s.studentDetail(projectID)
	require.Zero(t, res.Code)
	assert.True(t, res.Data.Released)
	assert.Equal(t, committeeUID, res.Data.ReleasedBy)
	assert.Equal(t, releasedAt.UnixMilli(), res.Data.ReleasedAt)

	// 每个成员一条事件
	got := make(map[int64]event.ResultReleasedEvent, 2)
	for i := 0; i < 2; i++ {
		cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		msg, err := consumer.Consume(cctx)
		cancel()
		require.NoError(t, err)
		var evt event.ResultReleasedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &evt))
		got[evt.MemberID] = evt
	}
	require.Len(t, got, 2)
	assert.Equal(t, projectID, got[memberA].ProjectID)
	assert.Equal(t, got[memberA].FinalScore, got[memberB].FinalScore)

	// 发布是单向的，重复发布报冲突
	rel := s.release(projectID)
	assert.Equal(t, errs.Conflict.Code, rel.Code)

	// 没算过成绩的课题无从发布
	rel = s.release(7999)
	assert.Equal(t, errs.NotFound.Code, rel.Code)
}

func TestResultModule(t *testing.T) {
	suite.Run(t, new(ResultTestSuite))
}
