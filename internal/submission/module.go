package submission

import (
	"github.com/edusphere/fyptrack/internal/submission/internal/domain"
	"github.com/edusphere/fyptrack/internal/submission/internal/job"
	"github.com/edusphere/fyptrack/internal/submission/internal/service"
	"github.com/edusphere/fyptrack/internal/submission/internal/web"
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
	SweepJob *LockOverdueSubmissionsJob
}

type Service = service.Service

type Handler = web.Handler

type AdminHandler = web.AdminHandler

type LockOverdueSubmissionsJob = job.LockOverdueSubmissionsJob

type Submission = domain.Submission

type SubmissionStatus = domain.SubmissionStatus

type SupervisorMark = domain.SupervisorMark

const (
	SubmissionStatusPendingSupervisor    = domain.SubmissionStatusPendingSupervisor
	SubmissionStatusRevisionRequested    = domain.SubmissionStatusRevisionRequested
	SubmissionStatusApprovedBySupervisor = domain.SubmissionStatusApprovedBySupervisor
	SubmissionStatusLockedForEval        = domain.SubmissionStatusLockedForEval
	SubmissionStatusEvalInProgress       = domain.SubmissionStatusEvalInProgress
	SubmissionStatusEvalFinalized        = domain.SubmissionStatusEvalFinalized
)
