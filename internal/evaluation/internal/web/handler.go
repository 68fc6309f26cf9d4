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
	"github.com/ecodeclub/ginx/session"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler 评审教师打分与定稿，评审教师身份取自登录态
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/evaluation/mark", ginx.BS[MarkReq](h.SubmitMark))
	server.POST("/evaluation/finalize", ginx.BS[FinalizeReq](h.FinalizeMark))
	server.POST("/evaluation/summary", ginx.B[SummaryReq](h.Summary))
}

func (h *Handler) SubmitMark(ctx *ginx.Context, req MarkReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.SubmitMark(ctx, req.SubmissionID, sess.Claims().Uid, req.Score)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *Handler) FinalizeMark(ctx *ginx.Context, req FinalizeReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.FinalizeMark(ctx, req.SubmissionID, sess.Claims().Uid)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *Handler) Summary(ctx *ginx.Context, req SummaryReq) (ginx.Result, error) {
	summary, err := h.svc.Summary(ctx, req.SubmissionID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newSummaryResp(summary),
	}, nil
}
