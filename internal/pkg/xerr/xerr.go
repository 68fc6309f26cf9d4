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

// Package xerr 定义跨模块共享的业务错误分类。
// 各模块的 web 层负责把这里的错误映射为对应的 ginx.Result 错误码。
package xerr

import (
	"errors"
	"fmt"
)

// 业务规则错误的稳定机器码，调用方按码分支，不要按 Msg 分支
const (
	CodeSupervisorMarksRequired = "SUPERVISOR_MARKS_REQUIRED"
	CodeSubmissionLocked        = "SUBMISSION_LOCKED"
	CodeDuplicateSubmission     = "DUPLICATE_SUBMISSION"
	CodeInvalidStatus           = "INVALID_STATUS"
	CodeNotLocked               = "NOT_LOCKED"
	CodeMarkFinalized           = "MARK_FINALIZED"
	CodeInvalidDeadlineGap      = "INVALID_DEADLINE_GAP"
	CodeBatchInactive           = "BATCH_INACTIVE"
	CodeNoDeadlineBatch         = "NO_DEADLINE_BATCH"
	CodeNoFinalizedSubmissions  = "NO_FINALIZED_SUBMISSIONS"
	CodeIncompleteEvaluations   = "INCOMPLETE_EVALUATIONS"
)

// ValidationError 输入不合法，直接返回给调用方，不重试
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// BusinessError 违反业务规则，Code 是稳定机器码，Msg 面向人
type BusinessError struct {
	Code string
	Msg  string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func NewBusiness(code, format string, args ...any) *BusinessError {
	return &BusinessError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// ConflictError 重复操作，等价于 409。幂等调用方可视作"已完成"
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError 资源不存在，等价于 404
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// BusinessCode 从错误链中提取业务机器码，没有则返回空串
func BusinessCode(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
