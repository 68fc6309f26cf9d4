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
	"github.com/edusphere/fyptrack/internal/deadline/internal/domain"
	"github.com/edusphere/fyptrack/internal/deadline/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

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
	server.POST("/deadline-batch/create", ginx.B[CreateBatchReq](h.Create))
	server.POST("/deadline-batch/deactivate", ginx.B[IDReq](h.Deactivate))
	server.POST("/deadline-batch/assign", ginx.B[AssignReq](h.Assign))
	server.POST("/deadline-batch/detail", ginx.B[IDReq](h.Detail))
	server.POST("/deadline-batch/list", ginx.B[Page](h.List))
}

func (h *AdminHandler) Create(ctx *ginx.Context, req CreateBatchReq) (ginx.Result, error) {
	id, err := h.svc.CreateBatch(ctx, req.Batch.toDomain())
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: id,
	}, nil
}

func (h *AdminHandler) Deactivate(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	err := h.svc.DeactivateBatch(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Assign(ctx *ginx.Context, req AssignReq) (ginx.Result, error) {
	err := h.svc.AssignProject(ctx, req.ProjectID, req.BatchID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	batch, err := h.svc.BatchDetail(ctx, req.ID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newDeadlineBatch(batch),
	}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req Page) (ginx.Result, error) {
	batches, total, err := h.svc.List(ctx, req.Offset, req.Limit)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			List: slice.Map(batches, func(idx int, src domain.DeadlineBatch) DeadlineBatch {
				return newDeadlineBatch(src)
			}),
		},
	}, nil
}
