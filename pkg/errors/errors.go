package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 打卡模块错误。
var (
	OutOfRange     = Definition{Code: "OUT_OF_RANGE", Message: "Reported location outside every site radius"}
	DuplicatePunch = Definition{Code: "DUPLICATE_PUNCH", Message: "Punch of this type already recorded today"}
	SystemError    = Definition{Code: "SYSTEM_ERROR", Message: "Unexpected system error"}
)

// 管理接口错误。
var (
	InvalidTimeRange = Definition{Code: "INVALID_TIME_RANGE", Message: "Invalid start/end timestamp"}
	InvalidRequest   = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	TooManyRequests  = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	OutOfRange.Code:       OutOfRange,
	DuplicatePunch.Code:   DuplicatePunch,
	SystemError.Code:      SystemError,
	InvalidTimeRange.Code: InvalidTimeRange,
	InvalidRequest.Code:   InvalidRequest,
	TooManyRequests.Code:  TooManyRequests,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 消费者用于表示消息已处理、应直接 Ack 丢弃
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return e.Reason
}
