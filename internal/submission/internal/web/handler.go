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
	"github.com/ecodeclub/ginx/session"
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler 学生上传与指导教师审阅，挂在带登录态的业务端
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/submission/upload", ginx.BS[UploadReq](h.Upload))
	server.POST("/submission/detail", ginx.B[IDReq](h.Detail))
	server.POST("/submission/list", ginx.B[ProjectReq](h.List))
	server.POST("/submission/review/revise", ginx.B[ReviseReq](h.RequestRevision))
	server.POST("/submission/review/approve", ginx.B[ApproveReq](h.Approve))
	server.POST("/submission/score/supervisor", ginx.B[ScoreReq](h.RecordSupervisorScore))
}

func (h *Handler) Upload(ctx *ginx.Context, req UploadReq, sess session.Session) (ginx.Result, error) {
	id, err := h.svc.Upload(ctx, domain.Submission{
		ProjectID:  req.ProjectID,
		DocTypeID:  req.DocTypeID,
		FileRef:    req.FileRef,
		UploaderID: sess.Claims().Uid,
	})
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: id,
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	sub, err := h.svc.Detail(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newSubmission(sub),
	}, nil
}

func (h *Handler) List(ctx *ginx.Context, req ProjectReq) (ginx.Result, error) {
	subs, err := h.svc.ListByProject(ctx, req.ProjectID)
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

func (h *Handler) RequestRevision(ctx *ginx.Context, req ReviseReq) (ginx.Result, error) {
	err := h.svc.RequestRevision(ctx, req.ID, req.Feedback)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *Handler) Approve(ctx *ginx.Context, req ApproveReq) (ginx.Result, error) {
	err := h.svc.Approve(ctx, req.ID, req.Score)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *Handler) RecordSupervisorScore(ctx *ginx.Context, req ScoreReq) (ginx.Result, error) {
	err := h.svc.RecordSupervisorScore(ctx, req.ID, req.Score)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}
