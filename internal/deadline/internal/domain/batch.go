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

package domain

import (
	"sort"
	"time"

	"github.com/edusphere/fyptrack/internal/pkg/xerr"
)

// DeadlineBatch 一个评分周期内各类文档的截止日期集合。
// 一旦有文档按它提交过就不再原地修改，只停用
type DeadlineBatch struct {
	ID           int64
	Name         string
	AppliesFrom  time.Time
	AppliesUntil *time.Time
	IsActive     bool
	Deadlines    []ProjectDeadline
	Ctime        time.Time
	Utime        time.Time
}

type ProjectDeadline struct {
	ID           int64
	BatchID      int64
	DocTypeID    int64
	DeadlineDate time.Time
	SortOrder    int64
}

// DueDeadline 扫描任务的输入：某个启用批次中已到期的一条截止日期
type DueDeadline struct {
	BatchID      int64
	DocTypeID    int64
	DeadlineDate time.Time
}

// ValidateGaps 按 sortOrder 排序后检查相邻截止日期间隔不少于 minGapDays 天。
// 间隔按完整的 24 小时天数计算
func (b DeadlineBatch) ValidateGaps(minGapDays int) error {
	ds := make([]ProjectDeadline, len(b.Deadlines))
	copy(ds, b.Deadlines)
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].SortOrder < ds[j].SortOrder
	})
	for i := 1; i < len(ds); i++ {
		gap := int(ds[i].DeadlineDate.Sub(ds[i-1].DeadlineDate) / (24 * time.Hour))
		if gap < minGapDays {
			return xerr.NewBusiness(xerr.CodeInvalidDeadlineGap,
				"第 %d 与第 %d 个截止日期只间隔 %d 天，至少需要 %d 天",
				i, i+1, gap, minGapDays)
		}
	}
	return nil
}
