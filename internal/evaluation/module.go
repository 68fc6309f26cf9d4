package evaluation

import (
	"github.com/edusphere/fyptrack/internal/evaluation/internal/domain"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/service"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/web"
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
}

type Service = service.Service

type Handler = web.Handler

type AdminHandler = web.AdminHandler

type EvaluationMark = domain.EvaluationMark

type Summary = domain.Summary
