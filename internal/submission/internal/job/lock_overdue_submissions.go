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

package job

import (
	"context"
	"fmt"

	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/submission/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
	"github.com/jonboulle/clockwork"
)

var _ ecron.NamedJob = (*LockOverdueSubmissionsJob)(nil)

// LockOverdueSubmissionsJob 定期扫描已过截止日期的批次，
// 把对应课题的终版提交锁定进入评审。锁定是逐行抢占的，
// 同一时刻跑多个实例也不会重复锁定
type LockOverdueSubmissionsJob struct {
	svc         service.Service
	deadlineSvc deadline.Service
	clock       clockwork.Clock
	l           *elog.Component
}

func NewLockOverdueSubmissionsJob(svc service.Service,
	deadlineSvc deadline.Service,
	clock clockwork.Clock) *LockOverdueSubmissionsJob {
	return &LockOverdueSubmissionsJob{
		svc:         svc,
		deadlineSvc: deadlineSvc,
		clock:       clock,
		l:           elog.DefaultLogger,
	}
}

func (j *LockOverdueSubmissionsJob) Name() string {
	return "lock_overdue_submissions_job"
}

func (j *LockOverdueSubmissionsJob) Run(ctx context.Context) error {
	due, err := j.deadlineSvc.DueDeadlines(ctx, j.clock.Now())
	if err != nil {
		return fmt.Errorf("获取已过期截止日期失败: %w", err)
	}
	// 同一批次的多条截止日期共用一份课题列表
	projects := make(map[int64][]int64, len(due))
	var locked int
	for _, d := range due {
		ids, ok := projects[d.BatchID]
		if !ok {
			ids, err = j.deadlineSvc.ProjectIDsByBatch(ctx, d.BatchID)
			if err != nil {
				j.l.Error("获取批次课题列表失败",
					elog.FieldErr(err),
					elog.Int64("batchID", d.BatchID))
				continue
			}
			projects[d.BatchID] = ids
		}
		for _, projectID := range ids {
			ok, err := j.svc.LockForEvaluation(ctx, projectID, d.DocTypeID)
			if err != nil {
				// 单条失败不影响本轮其余提交，下一轮扫描会重试
				j.l.Error("锁定提交失败",
					elog.FieldErr(err),
					elog.Int64("projectID", projectID),
					elog.Int64("docTypeID", d.DocTypeID))
				continue
			}
			if ok {
				locked++
			}
		}
	}
	j.l.Info("截止日期扫描完成",
		elog.Int("due", len(due)),
		elog.Int("locked", locked))
	return nil
}
