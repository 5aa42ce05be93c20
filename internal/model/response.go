package model

const (
	CodeSuccess = 1
	CodeFailure = 0
)

// Result is the envelope written for every API response.
type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(data any) Result {
	return Result{Code: CodeSuccess, Data: data}
}

func Failure(msg string) Result {
	return Result{Code: CodeFailure, Msg: msg}
}
