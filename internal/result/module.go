package result

import (
	"github.com/edusphere/fyptrack/internal/result/internal/domain"
	"github.com/edusphere/fyptrack/internal/result/internal/service"
	"github.com/edusphere/fyptrack/internal/result/internal/web"
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
}

type Service = service.Service

type Handler = web.Handler

type AdminHandler = web.AdminHandler

type FinalResult = domain.FinalResult

type Breakdown = domain.Breakdown

type BreakdownEntry = domain.BreakdownEntry
