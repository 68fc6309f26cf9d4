package errs

var (
	SystemError  = ErrorCode{Code: 525001, Msg: "系统错误"}
	InvalidInput = ErrorCode{Code: 525002, Msg: "非法输入"}
	BusinessRule = ErrorCode{Code: 525003, Msg: "违反业务规则"}
	NotFound     = ErrorCode{Code: 525004, Msg: "成绩不存在"}
	Conflict     = ErrorCode{Code: 525005, Msg: "重复操作"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
