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
	"github.com/edusphere/fyptrack/internal/result/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler 学生端只能看已发布的成绩
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/result/detail", ginx.B[ProjectReq](h.Detail))
}

func (h *Handler) Detail(ctx *ginx.Context, req ProjectReq) (ginx.Result, error) {
	res, err := h.svc.ReleasedDetail(ctx, req.ProjectID)
	if err != nil {
		return failResult(err), err
	}
	return ginx.Result{
		Data: newFinalResult(res),
	}, nil
}
