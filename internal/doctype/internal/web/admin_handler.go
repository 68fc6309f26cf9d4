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
	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
	"github.com/edusphere/fyptrack/internal/doctype/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// AdminHandler 文档类型由答辩委员会管理员维护，只挂在管理端
type AdminHandler struct {
	svc    service.Service
	logger *elog.Component
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	server.POST("/doctype/create", ginx.B[SaveReq](h.Create))
	server.POST("/doctype/update", ginx.B[SaveReq](h.Update))
	server.POST("/doctype/deactivate", ginx.B[IDReq](h.Deactivate))
	server.POST("/doctype/detail", ginx.B[IDReq](h.Detail))
	server.POST("/doctype/list", ginx.B[Page](h.List))
}

func (h *AdminHandler) Create(ctx *ginx.Context, req SaveReq) (ginx.Result, error) {
	id, err := h.svc.Create(ctx, req.DocumentType.toDomain())
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: id,
	}, nil
}

func (h *AdminHandler) Update(ctx *ginx.Context, req SaveReq) (ginx.Result, error) {
	err := h.svc.Update(ctx, req.DocumentType.toDomain())
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Deactivate(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	err := h.svc.Deactivate(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	dt, err := h.svc.Detail(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newDocumentType(dt),
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
			List: slice.Map(list, func(idx int, src domain.DocumentType) DocumentType {
				return newDocumentType(src)
			}),
		},
	}, nil
}
