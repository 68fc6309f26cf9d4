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
	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/deadline/internal/errs"
	"github.com/edusphere/fyptrack/internal/deadline/internal/web"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/test"
	testioc "github.com/edusphere/fyptrack/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DeadlineBatchTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component

	svc        deadline.Service
	proposalID int64
	reportID   int64
	base       time.Time
}

func (s *DeadlineBatchTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	cache := testioc.InitCache()
	s.base = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	docTypeModule := doctype.InitModule(s.db, cache)
	deadlineModule := deadline.InitModule(s.db, docTypeModule, 15)
	s.svc = deadlineModule.Svc

	ctx := context.Background()
	var err error
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

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	deadlineModule.AdminHdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *DeadlineBatchTestSuite) TearDownSuite() {
	for _, table := range []string{
		"document_types", "deadline_batches",
		"project_deadlines", "project_batches",
	} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *DeadlineBatchTestSuite) TearDownTest() {
	for _, table := range []string{
		"deadline_batches", "project_deadlines", "project_batches",
	} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *DeadlineBatchTestSuite) create(batch web.DeadlineBatch) test.Result[int64] {
	req, err := http.NewRequest(http.MethodPost,
		"/deadline-batch/create", iox.NewJSONReader(web.CreateBatchReq{Batch: batch}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[int64]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *DeadlineBatchTestSuite) assign(projectID, batchID int64) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost,
		"/deadline-batch/assign", iox.NewJSONReader(web.AssignReq{
			ProjectID: projectID,
			BatchID:   batchID,
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	return recorder.MustScan()
}

func (s *DeadlineBatchTestSuite) batch(name string, gapDays int) web.DeadlineBatch {
	return web.DeadlineBatch{
		Name:        name,
		AppliesFrom: s.base.UnixMilli(),
		Deadlines: []web.ProjectDeadline{
			{
				DocTypeID:    s.proposalID,
				DeadlineDate: s.base.AddDate(0, 0, 10).UnixMilli(),
				SortOrder:    1,
			},
			{
				DocTypeID:    s.reportID,
				DeadlineDate: s.base.AddDate(0, 0, 10+gapDays).UnixMilli(),
				SortOrder:    2,
			},
		},
	}
}

func (s *DeadlineBatchTestSuite) TestCreate() {
	t := s.T()
	testCases := []struct {
		name     string
		batch    web.DeadlineBatch
		wantCode int
	}{
		{
			name:  "间隔正好十五天",
			batch: s.batch("2025 秋季批次", 15),
		},
		{
			name:  "间隔大于十五天",
			batch: s.batch("2025 冬季批次", 30),
		},
		{
			name:     "间隔不足十五天",
			batch:    s.batch("非法批次", 10),
			wantCode: errs.BusinessRule.Code,
		},
		{
			name:     "同一天两个截止日期",
			batch:    s.batch("同天批次", 0),
			wantCode: errs.BusinessRule.Code,
		},
		{
			name:     "批次名称重复",
			batch:    s.batch("2025 秋季批次", 20),
			wantCode: errs.DuplicateName.Code,
		},
		{
			name: "文档类型不存在",
			batch: web.DeadlineBatch{
				Name:        "未知类型批次",
				AppliesFrom: s.base.UnixMilli(),
				Deadlines: []web.ProjectDeadline{
					{DocTypeID: 99999, DeadlineDate: s.base.UnixMilli(), SortOrder: 1},
				},
			},
			wantCode: errs.InvalidInput.Code,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res := s.create(tc.batch)
			assert.Equal(t, tc.wantCode, res.Code)
			if tc.wantCode == 0 {
				assert.True(t, res.Data > 0)
			}
		})
	}
}

func (s *DeadlineBatchTestSuite) TestAssign() {
	t := s.T()
	res := s.create(s.batch("指派测试批次", 20))
	require.Zero(t, res.Code)
	batchID := res.Data

	require.Zero(t, s.assign(4001, batchID).Code)

	// 重新指派到另一个批次是覆盖语义
	res2 := s.create(s.batch("指派测试批次二", 20))
	require.Zero(t, res2.Code)
	require.Zero(t, s.assign(4001, res2.Data).Code)

	batch, err := s.svc.BatchForProject(context.Background(), 4001)
	require.NoError(t, err)
	assert.Equal(t, res2.Data, batch.ID)

	// 停用的批次不能再指派
	require.NoError(t, s.svc.DeactivateBatch(context.Background(), batchID))
	got := s.assign(4002, batchID)
	assert.Equal(t, errs.BusinessRule.Code, got.Code)

	// 不存在的批次
	got = s.assign(4003, 99999)
	assert.Equal(t, errs.NotFound.Code, got.Code)
}

func (s *DeadlineBatchTestSuite) TestDeadlineFor() {
	t := s.T()
	ctx := context.Background()
	res := s.create(s.batch("查询测试批次", 20))
	require.Zero(t, res.Code)
	require.Zero(t, s.assign(4101, res.Data).Code)

	due, err := s.svc.DeadlineFor(ctx, 4101, s.proposalID)
	require.NoError(t, err)
	assert.Equal(t, s.base.AddDate(0, 0, 10).UnixMilli(), due.UnixMilli())

	// 没指派批次的课题查不到截止日期
	_, err = s.svc.DeadlineFor(ctx, 4102, s.proposalID)
	require.Error(t, err)
}

func TestDeadlineBatchModule(t *testing.T) {
	suite.Run(t, new(DeadlineBatchTestSuite))
}
