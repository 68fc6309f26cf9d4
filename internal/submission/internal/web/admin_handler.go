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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 答辩委员会管理端：手动锁定和查看评审完成的提交。
// 日常锁定由定时扫描完成，这里只兜底
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	server.POST("/submission/lock", ginx.B[LockReq](h.Lock))
	server.POST("/submission/finalized", ginx.B[ProjectReq](h.Finalized))
	server.POST("/submission/score/supervisor/detail", ginx.B[IDReq](h.SupervisorScore))
}

func (h *AdminHandler) Lock(ctx *ginx.Context, req LockReq) (ginx.Result, error) {
	locked, err := h.svc.LockForEvaluation(ctx, req.ProjectID, req.DocTypeID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: locked,
	}, nil
}

func (h *AdminHandler) Finalized(ctx *ginx.Context, req ProjectReq) (ginx.Result, error) {
	subs, err := h.svc.FinalizedByProject(ctx, req.ProjectID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: ListResp{
			List: slice.Map(subs, func(idx int, src domain.Submission) Submission {
				return newSubmission(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) SupervisorScore(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	mark, err := h.svc.SupervisorScore(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: SupervisorMark{
			SubmissionID: mark.SubmissionID,
			Score:        mark.Score,
			Ctime:        mark.Ctime.UnixMilli(),
		},
	}, nil
}
