package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/edusphere/fyptrack/internal/pkg/xerr"
	"github.com/edusphere/fyptrack/internal/submission/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)

// failResult 把业务层错误翻译成带稳定错误码的响应。
// BusinessError 的机器码放进 Msg，调用方靠它区分具体规则
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
