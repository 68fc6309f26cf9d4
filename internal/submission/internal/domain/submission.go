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

type SubmissionStatus int64

const (
	// 等待指导教师审阅
	SubmissionStatusPendingSupervisor SubmissionStatus = 1
	// 指导教师要求修改，等待学生重新提交
	SubmissionStatusRevisionRequested SubmissionStatus = 2
	// 指导教师已通过
	SubmissionStatusApprovedBySupervisor SubmissionStatus = 3
	// 截止日期已过，锁定进入评审
	SubmissionStatusLockedForEval SubmissionStatus = 4
	// 已有评审教师打分
	SubmissionStatusEvalInProgress SubmissionStatus = 5
	// 全部评审教师定稿，终态
	SubmissionStatusEvalFinalized SubmissionStatus = 6
)

// Locked 进入评审后学生和指导教师都不能再动这份提交
func (s SubmissionStatus) Locked() bool {
	return s >= SubmissionStatusLockedForEval
}

// legalTransitions 状态机的全部合法迁移
var legalTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionStatusPendingSupervisor: {
		SubmissionStatusRevisionRequested,
		SubmissionStatusApprovedBySupervisor,
	},
	SubmissionStatusApprovedBySupervisor: {
		SubmissionStatusLockedForEval,
	},
	SubmissionStatusLockedForEval: {
		SubmissionStatusEvalInProgress,
	},
	SubmissionStatusEvalInProgress: {
		SubmissionStatusEvalFinalized,
	},
}

// CanTransitionTo 只回答"是否合法"，附带条件（截止日期、分数）由服务层校验
func (s SubmissionStatus) CanTransitionTo(target SubmissionStatus) bool {
	for _, t := range legalTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Submission 某课题某类文档的一个版本
type Submission struct {
	ID                   int64
	ProjectID            int64
	DocTypeID            int64
	Version              int64
	Status               SubmissionStatus
	IsFinal              bool
	FileRef              string
	UploaderID           int64
	SupervisorFeedback   string
	CommitteeAvgScore    *decimal.Decimal
	UploadedAt           time.Time
	SupervisorReviewedAt *time.Time
	Utime                time.Time
}

// SupervisorMark 指导教师给某版本的评分，一个版本至多一条
type SupervisorMark struct {
	ID           int64
	SubmissionID int64
	Score        int64
	Ctime        time.Time
}
