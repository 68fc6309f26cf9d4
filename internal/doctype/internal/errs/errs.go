package errs

var (
	SystemError   = ErrorCode{Code: 521001, Msg: "系统错误"}
	InvalidInput  = ErrorCode{Code: 521002, Msg: "非法输入"}
	DuplicateCode = ErrorCode{Code: 521003, Msg: "文档类型编码已存在"}
	NotFound      = ErrorCode{Code: 521004, Msg: "文档类型不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
