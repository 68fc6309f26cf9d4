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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedScore(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name             string
		supervisorScore  int64
		committeeAvg     decimal.Decimal
		weightSupervisor int64
		weightCommittee  int64
		want             string
	}{
		{
			name:             "二八开",
			supervisorScore:  80,
			committeeAvg:     decimal.NewFromInt(90),
			weightSupervisor: 20,
			weightCommittee:  80,
			want:             "88",
		},
		{
			name:             "全部指导教师",
			supervisorScore:  75,
			committeeAvg:     decimal.NewFromInt(90),
			weightSupervisor: 100,
			weightCommittee:  0,
			want:             "75",
		},
		{
			name:             "委员会平均分带小数",
			supervisorScore:  80,
			committeeAvg:     decimal.RequireFromString("86.6667"),
			weightSupervisor: 30,
			weightCommittee:  70,
			want:             "84.6667",
		},
		{
			name:             "零分",
			supervisorScore:  0,
			committeeAvg:     decimal.Zero,
			weightSupervisor: 50,
			weightCommittee:  50,
			want:             "0",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := WeightedScore(tc.supervisorScore, tc.committeeAvg,
				tc.weightSupervisor, tc.weightCommittee)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestFinalScore(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		entries []BreakdownEntry
		want    string
	}{
		{
			name: "两类文档取平均",
			entries: []BreakdownEntry{
				{WeightedScore: decimal.RequireFromString("88")},
				{WeightedScore: decimal.RequireFromString("92")},
			},
			want: "90",
		},
		{
			name: "除不尽保留四位小数",
			entries: []BreakdownEntry{
				{WeightedScore: decimal.RequireFromString("80")},
				{WeightedScore: decimal.RequireFromString("85")},
				{WeightedScore: decimal.RequireFromString("91")},
			},
			want: "85.3333",
		},
		{
			name: "单类文档就是它本身",
			entries: []BreakdownEntry{
				{WeightedScore: decimal.RequireFromString("77.5")},
			},
			want: "77.5",
		},
		{
			name: "没有明细返回零",
			want: "0",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FinalScore(tc.entries).String())
		})
	}
}
