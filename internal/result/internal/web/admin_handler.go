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
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
	"github.com/edusphere/fyptrack/internal/result/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 答辩委员会管理端：计算、发布和查看最终成绩
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	server.POST("/result/compute", ginx.B[ProjectReq](h.Compute))
	server.POST("/result/release", ginx.BS[ProjectReq](h.Release))
	server.POST("/result/detail", ginx.B[ProjectReq](h.Detail))
	server.POST("/result/list", ginx.B[Page](h.List))
}

func (h *AdminHandler) Compute(ctx *ginx.Context, req ProjectReq) (ginx.Result, error) {
	res, err := h.svc.Compute(ctx, req.ProjectID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newFinalResult(res),
	}, nil
}

func (h *AdminHandler) Release(ctx *ginx.Context, req ProjectReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Release(ctx, req.ProjectID, sess.Claims().Uid)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req ProjectReq) (ginx.Result, error) {
	res, err := h.svc.Detail(ctx, req.ProjectID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newFinalResult(res),
	}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req Page) (ginx.Result, error) {
	list, total, err := h.svc.List(ctx, req.Offset, req.Limit)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			List: slice.Map(list, func(idx int, src domain.FinalResult) FinalResult {
				return newFinalResult(src)
			}),
		},
	}, nil
}
