package errs

var (
	SystemError  = ErrorCode{Code: 523001, Msg: "系统错误"}
	InvalidInput = ErrorCode{Code: 523002, Msg: "非法输入"}
	BusinessRule = ErrorCode{Code: 523003, Msg: "违反业务规则"}
	NotFound     = ErrorCode{Code: 523004, Msg: "提交不存在"}
	Conflict     = ErrorCode{Code: 523005, Msg: "重复操作"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
