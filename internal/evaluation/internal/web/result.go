package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/edusphere/fyptrack/internal/evaluation/internal/errs"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)

func failResult(err error) ginx.Result {
	var (
		ve *xerr.ValidationError
		be *xerr.BusinessError
		ce *xerr.ConflictError
		ne *xerr.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return ginx.Result{Code: errs.InvalidInput.Code, Msg: ve.Msg}
	case errors.As(err, &be):
		return ginx.Result{Code: errs.BusinessRule.Code, Msg: be.Error()}
	case errors.As(err, &ce):
		return ginx.Result{Code: errs.Conflict.Code, Msg: ce.Msg}
	case errors.As(err, &ne):
		return ginx.Result{Code: errs.NotFound.Code, Msg: ne.Msg}
	default:
		return systemErrorResult
	}
}
