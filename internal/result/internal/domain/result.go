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

// BreakdownSchemaVersion 成绩明细的结构版本，字段变更时递增
const BreakdownSchemaVersion = 1

// FinalResult 一个课题的最终成绩，每个课题至多一条。
// 计算之后先处于未发布状态，发布是单向开关
type FinalResult struct {
	ID         int64
	ProjectID  int64
	FinalScore decimal.Decimal
	Released   bool
	ReleasedBy int64
	ReleasedAt *time.Time
	Breakdown  Breakdown
	Ctime      time.Time
	Utime      time.Time
}

// Breakdown 各类文档的得分明细，整体序列化存储
type Breakdown struct {
	SchemaVersion int              `json:"schemaVersion"`
	Entries       []BreakdownEntry `json:"entries"`
}

type BreakdownEntry struct {
	DocTypeID        int64           `json:"docTypeId"`
	DocTypeCode      string          `json:"docTypeCode"`
	DocTypeTitle     string          `json:"docTypeTitle"`
	SubmissionID     int64           `json:"submissionId"`
	SupervisorScore  int64           `json:"supervisorScore"`
	CommitteeAvg     decimal.Decimal `json:"committeeAvg"`
	EvaluatorCount   int64           `json:"evaluatorCount"`
	WeightSupervisor int64           `json:"weightSupervisor"`
	WeightCommittee  int64           `json:"weightCommittee"`
	// WeightedScore 本类文档加权后的得分，保留 4 位小数
	WeightedScore decimal.Decimal `json:"weightedScore"`
}

// WeightedScore 单类文档的加权得分：
// 指导教师分 × 指导权重% + 委员会平均分 × 委员会权重%，保留 4 位小数
func WeightedScore(supervisorScore int64, committeeAvg decimal.Decimal,
	weightSupervisor, weightCommittee int64) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	sup := decimal.NewFromInt(supervisorScore).
		Mul(decimal.NewFromInt(weightSupervisor)).
		Div(hundred)
	com := committeeAvg.
		Mul(decimal.NewFromInt(weightCommittee)).
		Div(hundred)
	return sup.Add(com).Round(4)
}

// FinalScore 各类文档加权得分的算术平均，不再按文档类型加权
func FinalScore(entries []BreakdownEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	scores := make([]decimal.Decimal, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, e.WeightedScore)
	}
	return decimal.Avg(scores[0], scores[1:]...).Round(4)
}
