package errs

var (
	SystemError   = ErrorCode{Code: 522001, Msg: "系统错误"}
	InvalidInput  = ErrorCode{Code: 522002, Msg: "非法输入"}
	DuplicateName = ErrorCode{Code: 522003, Msg: "批次名称已存在"}
	NotFound      = ErrorCode{Code: 522004, Msg: "批次不存在"}
	BusinessRule  = ErrorCode{Code: 522005, Msg: "违反业务规则"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
