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
	"time"

	"github.com/shopspring/decimal"
)

// EvaluationMark 某个评审教师对某份锁定提交的评分。
// 定稿前可以反复修改，定稿后不可变
type EvaluationMark struct {
	ID           int64
	SubmissionID int64
	EvaluatorID  int64
	Score        int64
	Finalized    bool
	Ctime        time.Time
	Utime        time.Time
}

// Summary 一份提交的评审进度
type Summary struct {
	SubmissionID   int64
	EvaluatorIDs   []int64
	AssignedCount  int64
	FinalizedCount int64
	// AverageOfFinalized 已定稿评分的平均分，一份都没定稿时为 nil
	AverageOfFinalized *decimal.Decimal
	Marks              []EvaluationMark
}

// AllFinalized 全部已指派的评审教师都定稿了才算完成。
// 没有指派任何评审教师的提交永远不算完成
func (s Summary) AllFinalized() bool {
	return s.AssignedCount > 0 && s.FinalizedCount == s.AssignedCount
}

// CommitteeAverage 已定稿评分的算术平均，保留 4 位小数
func CommitteeAverage(marks []EvaluationMark) decimal.Decimal {
	scores := make([]decimal.Decimal, 0, len(marks))
	for _, m := range marks {
		if m.Finalized {
			scores = append(scores, decimal.NewFromInt(m.Score))
		}
	}
	if len(scores) == 0 {
		return decimal.Zero
	}
	return decimal.Avg(scores[0], scores[1:]...).Round(4)
}
