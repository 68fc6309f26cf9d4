package doctype

import (
	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
	"github.com/edusphere/fyptrack/internal/doctype/internal/service"
	"github.com/edusphere/fyptrack/internal/doctype/internal/web"
)

type Module struct {
	Svc      Service
	AdminHdl *AdminHandler
}

type Service = service.Service

type AdminHandler = web.AdminHandler

type DocumentType = domain.DocumentType
