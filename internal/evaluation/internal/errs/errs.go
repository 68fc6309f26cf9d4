package errs

var (
	SystemError  = ErrorCode{Code: 524001, Msg: "系统错误"}
	InvalidInput = ErrorCode{Code: 524002, Msg: "非法输入"}
	BusinessRule = ErrorCode{Code: 524003, Msg: "违反业务规则"}
	NotFound     = ErrorCode{Code: 524004, Msg: "评分不存在"}
	Conflict     = ErrorCode{Code: 524005, Msg: "重复操作"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
