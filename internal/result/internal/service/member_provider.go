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

package service

import (
	"context"

	"github.com/edusphere/fyptrack/internal/submission"
)

// submissionMemberProvider 以上传过文档的人作为课题成员。
// 接入独立的课题成员服务后替换这里即可
type submissionMemberProvider struct {
	submissionSvc submission.Service
}

func NewSubmissionMemberProvider(submissionSvc submission.Service) MemberProvider {
	return &submissionMemberProvider{submissionSvc: submissionSvc}
}

func (p *submissionMemberProvider) ProjectMembers(ctx context.Context, projectID int64) ([]int64, error) {
	subs, err := p.submissionSvc.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(subs))
	members := make([]int64, 0, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.UploaderID]; ok {
			continue
		}
		seen[sub.UploaderID] = struct{}{}
		members = append(members, sub.UploaderID)
	}
	return members, nil
}
