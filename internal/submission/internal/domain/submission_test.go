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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		from SubmissionStatus
		to   SubmissionStatus
		want bool
	}{
		{
			name: "待审阅可以要求修改",
			from: SubmissionStatusPendingSupervisor,
			to:   SubmissionStatusRevisionRequested,
			want: true,
		},
		{
			name: "待审阅可以通过",
			from: SubmissionStatusPendingSupervisor,
			to:   SubmissionStatusApprovedBySupervisor,
			want: true,
		},
		{
			name: "待审阅不能直接锁定",
			from: SubmissionStatusPendingSupervisor,
			to:   SubmissionStatusLockedForEval,
			want: false,
		},
		{
			name: "已通过可以锁定",
			from: SubmissionStatusApprovedBySupervisor,
			to:   SubmissionStatusLockedForEval,
			want: true,
		},
		{
			name: "已通过不能退回要求修改",
			from: SubmissionStatusApprovedBySupervisor,
			to:   SubmissionStatusRevisionRequested,
			want: false,
		},
		{
			name: "已锁定可以进入评审中",
			from: SubmissionStatusLockedForEval,
			to:   SubmissionStatusEvalInProgress,
			want: true,
		},
		{
			name: "已锁定不能解锁",
			from: SubmissionStatusLockedForEval,
			to:   SubmissionStatusApprovedBySupervisor,
			want: false,
		},
		{
			name: "评审中可以定稿",
			from: SubmissionStatusEvalInProgress,
			to:   SubmissionStatusEvalFinalized,
			want: true,
		},
		{
			name: "评审完成是终态",
			from: SubmissionStatusEvalFinalized,
			to:   SubmissionStatusEvalInProgress,
			want: false,
		},
		{
			name: "要求修改不能直接通过",
			from: SubmissionStatusRevisionRequested,
			to:   SubmissionStatusApprovedBySupervisor,
			want: false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestSubmissionStatus_Locked(t *testing.T) {
	t.Parallel()
	assert.False(t, SubmissionStatusPendingSupervisor.Locked())
	assert.False(t, SubmissionStatusRevisionRequested.Locked())
	assert.False(t, SubmissionStatusApprovedBySupervisor.Locked())
	assert.True(t, SubmissionStatusLockedForEval.Locked())
	assert.True(t, SubmissionStatusEvalInProgress.Locked())
	assert.True(t, SubmissionStatusEvalFinalized.Locked())
}
