package deadline

import (
	"github.com/edusphere/fyptrack/internal/deadline/internal/domain"
	"github.com/edusphere/fyptrack/internal/deadline/internal/service"
	"github.com/edusphere/fyptrack/internal/deadline/internal/web"
)

type Module struct {
	Svc      Service
	AdminHdl *AdminHandler
}

type Service = service.Service

type AdminHandler = web.AdminHandler

type DeadlineBatch = domain.DeadlineBatch

type ProjectDeadline = domain.ProjectDeadline

type DueDeadline = domain.DueDeadline
