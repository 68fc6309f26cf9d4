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
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/evaluation"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/errs"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/web"
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

const (
	evaluatorUID  = int64(6001)
	evaluatorUID2 = int64(6002)
)

type EvaluationTestSuite struct {
	suite.Suite
	server      *egin.Component
	adminServer *egin.Component
	db          *egorm.Component

	svc       evaluation.Service
	subSvc    submission.Service
	docTypeID int64
}

func (s *EvaluationTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	q := testioc.InitMQ()
	cache := testioc.InitCache()
	clock := clockwork.NewFakeClockAt(
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	docTypeModule := doctype.InitModule(s.db, cache)
	deadlineModule := deadline.InitModule(s.db, docTypeModule, 15)
	subModule, err := submission.InitModule(s.db, q, docTypeModule, deadlineModule, clock)
	require.NoError(s.T(), err)
	evalModule := evaluation.InitModule(s.db, subModule)
	s.svc = evalModule.Svc
	s.subSvc = subModule.Svc

	s.docTypeID, err = docTypeModule.Svc.Create(context.Background(), doctype.DocumentType{
		Code:             "THESIS",
		Title:            "毕业论文",
		WeightSupervisor: 30,
		WeightCommittee:  70,
		DisplayOrder:     1,
	})
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: evaluatorUID,
		}))
	})
	evalModule.Hdl.PrivateRoutes(server.Engine)
	s.server = server

	adminServer := egin.Load("server").Build()
	evalModule.AdminHdl.PrivateRoutes(adminServer.Engine)
	s.adminServer = adminServer
}

func (s *EvaluationTestSuite) TearDownSuite() {
	for _, table := range []string{
		"document_submissions", "supervisor_marks",
		"submission_evaluators", "evaluation_marks",
		"document_types", "deadline_batches",
		"project_deadlines", "project_batches",
	} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *EvaluationTestSuite) TearDownTest() {
	for _, table := range []string{
		"document_submissions", "supervisor_marks",
		"submission_evaluators", "evaluation_marks",
	} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

// lockedSubmission 造一份已经锁定进入评审的提交
func (s *EvaluationTestSuite) lockedSubmission(projectID int64) int64 {
	ctx := context.Background()
	id, err := s.subSvc.Upload(ctx, submission.Submission{
		ProjectID:  projectID,
		DocTypeID:  s.docTypeID,
		FileRef:    "oss://fyp/thesis.pdf",
		UploaderID: 3001,
	})
	require.NoError(s.T(), err)
	score := int64(82)
	require.NoError(s.T(), s.subSvc.Approve(ctx, id, &score))
	locked, err := s.subSvc.LockForEvaluation(ctx, projectID, s.docTypeID)
	require.NoError(s.T(), err)
	require.True(s.T(), locked)
	return id
}

func (s *EvaluationTestSuite) assign(submissionID int64, evaluatorIDs []int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/evaluation/assign", iox.NewJSONReader(web.AssignReq{
			SubmissionID: submissionID,
			EvaluatorIDs: evaluatorIDs,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.adminServer.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *EvaluationTestSuite) unassign(submissionID, evaluatorID int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/evaluation/unassign", iox.NewJSONReader(web.UnassignReq{
			SubmissionID: submissionID,
			EvaluatorID:  evaluatorID,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.adminServer.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *EvaluationTestSuite) summary(submissionID int64) test.Result[web.SummaryResp] {
	req, err := http.NewRequest(http.MethodPost,
		"/evaluation/summary", iox.NewJSONReader(web.SummaryReq{
			SubmissionID: submissionID,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.SummaryResp]()
	s.adminServer.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *EvaluationTestSuite) mark(submissionID, score int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/evaluation/mark", iox.NewJSONReader(web.MarkReq{
			SubmissionID: submissionID,
			Score:        score,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *EvaluationTestSuite) finalize(submissionID int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/evaluation/finalize", iox.NewJSONReader(web.FinalizeReq{
			SubmissionID: submissionID,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *EvaluationTestSuite) TestAssign() {
	t := s.T()
	ctx := context.Background()

	// 未锁定的提交不能指派
	pendingID, err := s.subSvc.Upload(ctx, submission.Submission{
		ProjectID:  9101,
		DocTypeID:  s.docTypeID,
		FileRef:    "oss://fyp/thesis.pdf",
		UploaderID: 3001,
	})
	require.NoError(t, err)
	res := s.assign(pendingID, []int64{evaluatorUID})
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	lockedID := s.lockedSubmission(9102)
	res = s.assign(lockedID, []int64{evaluatorUID, evaluatorUID2, evaluatorUID})
	require.Zero(t, res.Code)

	// 重复指派是幂等的
	res = s.assign(lockedID, []int64{evaluatorUID})
	require.Zero(t, res.Code)

	summary, err := s.svc.Summary(ctx, lockedID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.AssignedCount)
	assert.Equal(t, []int64{evaluatorUID, evaluatorUID2}, summary.EvaluatorIDs)
	// 一份评分都没定稿时没有平均分
	assert.Nil(t, summary.AverageOfFinalized)
}

func (s *EvaluationTestSuite) TestSubmitMark() {
	t := s.T()
	ctx := context.Background()
	id := s.lockedSubmission(9201)

	// 没被指派不能打分
	res := s.mark(id, 85)
	assert.Equal(t, errs.InvalidInput.Code, res.Code)

	require.Zero(t, s.assign(id, []int64{evaluatorUID}).Code)
	require.Zero(t, s.mark(id, 85).Code)

	// 第一份评分推进到评审中
	sub, err := s.subSvc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submission.SubmissionStatusEvalInProgress, sub.Status)

	// 定稿前可以改分
	require.Zero(t, s.mark(id, 90).Code)
	summary, err := s.svc.Summary(ctx, id)
	require.NoError(t, err)
	require.Len(t, summary.Marks, 1)
	assert.Equal(t, int64(90), summary.Marks[0].Score)

	// 定稿之后不能再改
	require.Zero(t, s.finalize(id).Code)
	res = s.mark(id, 95)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)
}

func (s *EvaluationTestSuite) TestFinalizeGate() {
	t := s.T()
	ctx := context.Background()
	id := s.lockedSubmission(9301)
	require.Zero(t, s.assign(id, []int64{evaluatorUID, evaluatorUID2}).Code)

	// 没打过分不能定稿
	res := s.finalize(id)
	assert.Equal(t, errs.NotFound.Code, res.Code)

	require.Zero(t, s.mark(id, 80).Code)
	require.NoError(t, s.svc.SubmitMark(ctx, id, evaluatorUID2, 90))

	// 只有一个人定稿，聚合还不发生，进度里已经能看到定稿部分的平均分
	require.Zero(t, s.finalize(id).Code)
	sub, err := s.subSvc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submission.SubmissionStatusEvalInProgress, sub.Status)
	assert.Nil(t, sub.CommitteeAvgScore)
	sres := s.summary(id)
	require.Zero(t, sres.Code)
	assert.Equal(t, int64(1), sres.Data.FinalizedCount)
	assert.False(t, sres.Data.AllFinalized)
	assert.Equal(t, "80", sres.Data.AverageOfFinalized)

	// 重复定稿报冲突
	res = s.finalize(id)
	assert.Equal(t, errs.Conflict.Code, res.Code)

	// 最后一个人定稿触发聚合，提交进入评审完成
	require.NoError(t, s.svc.FinalizeMark(ctx, id, evaluatorUID2))
	sub, err = s.subSvc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submission.SubmissionStatusEvalFinalized, sub.Status)
	require.NotNil(t, sub.CommitteeAvgScore)
	assert.Equal(t, "85", sub.CommitteeAvgScore.String())
	sres = s.summary(id)
	require.Zero(t, sres.Code)
	assert.True(t, sres.Data.AllFinalized)
	assert.Equal(t, "85", sres.Data.AverageOfFinalized)
	assert.Equal(t, []int64{evaluatorUID, evaluatorUID2}, sres.Data.EvaluatorIDs)
}

func (s *EvaluationTestSuite) TestUnassignEvaluator() {
	t := s.T()
	ctx := context.Background()
	id := s.lockedSubmission(9501)

	// 没被指派过无从移除
	res := s.unassign(id, evaluatorUID)
	assert.Equal(t, errs.NotFound.Code, res.Code)

	require.Zero(t, s.assign(id, []int64{evaluatorUID, evaluatorUID2}).Code)
	require.Zero(t, s.mark(id, 80).Code)
	require.NoError(t, s.svc.SubmitMark(ctx, id, evaluatorUID2, 95))
	require.Zero(t, s.finalize(id).Code)

	// 已定稿的评分不能随指派一起移除
	res = s.unassign(id, evaluatorUID)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)

	// 移除迟迟不定稿的评审教师，他未定稿的评分一并删掉，
	// 剩下的人都已定稿，立即触发聚合
	require.Zero(t, s.unassign(id, evaluatorUID2).Code)
	summary, err := s.svc.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int64{evaluatorUID}, summary.EvaluatorIDs)
	require.Len(t, summary.Marks, 1)
	assert.Equal(t, evaluatorUID, summary.Marks[0].EvaluatorID)
	sub, err := s.subSvc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submission.SubmissionStatusEvalFinalized, sub.Status)
	require.NotNil(t, sub.CommitteeAvgScore)
	assert.Equal(t, "80", sub.CommitteeAvgScore.String())

	// 评审完成后名单不能再动
	res = s.unassign(id, evaluatorUID)
	assert.Equal(t, errs.BusinessRule.Code, res.Code)
}

func (s *EvaluationTestSuite) TestFinalizedSubmissionRejectsNewMarks() {
	t := s.T()
	ctx := context.Background()
	id := s.lockedSubmission(9401)
	require.Zero(t, s.assign(id, []int64{evaluatorUID}).Code)
	require.Zero(t, s.mark(id, 77).Code)
	require.Zero(t, s.finalize(id).Code)

	sub, err := s.subSvc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submission.SubmissionStatusEvalFinalized, sub.Status)

	err = s.svc.AssignEvaluators(ctx, id, []int64{evaluatorUID2})
	require.Error(t, err)
	err = s.svc.SubmitMark(ctx, id, evaluatorUID2, 60)
	require.Error(t, err)
}

func TestEvaluationModule(t *testing.T) {
	suite.Run(t, new(EvaluationTestSuite))
}
