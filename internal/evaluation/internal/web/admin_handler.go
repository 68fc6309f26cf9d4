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
	"github.com/ecodeclub/ginx"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 答辩委员会管理员调整评审名单
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	server.POST("/evaluation/assign", ginx.B[AssignReq](h.Assign))
	server.POST("/evaluation/unassign", ginx.B[UnassignReq](h.Unassign))
	server.POST("/evaluation/summary", ginx.B[SummaryReq](h.Summary))
}

func (h *AdminHandler) Assign(ctx *ginx.Context, req AssignReq) (ginx.Result, error) {
	err := h.svc.AssignEvaluators(ctx, req.SubmissionID, req.EvaluatorIDs)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Unassign(ctx *ginx.Context, req UnassignReq) (ginx.Result, error) {
	err := h.svc.UnassignEvaluator(ctx, req.SubmissionID, req.EvaluatorID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Summary(ctx *ginx.Context, req SummaryReq) (ginx.Result, error) {
	summary, err := h.svc.Summary(ctx, req.SubmissionID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newSummaryResp(summary),
	}, nil
}
