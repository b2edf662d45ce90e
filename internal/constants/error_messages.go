package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeRewardNotFound     = "REWARD_NOT_FOUND"
	ErrCodeInsufficientPoints = "INSUFFICIENT_POINTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeOperationFailed    = "OPERATION_FAILED"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
)

const (
	ErrMsgRewardNotFound     = "reward not found"
	ErrMsgInsufficientPoints = "insufficient points"
	ErrMsgUserNotFound       = "user not found"
	ErrMsgOperationFailed    = "operation failed"
)

var errorMessages = map[string]string{
	ErrCodeRewardNotFound:     ErrMsgRewardNotFound,
	ErrCodeInsufficientPoints: ErrMsgInsufficientPoints,
	ErrCodeUserNotFound:       ErrMsgUserNotFound,
	ErrCodeOperationFailed:    ErrMsgOperationFailed,
}

func GetErrorMessage(code string) string {
	msg, exists := errorMessages[code]
	if !exists {
		return ""
	}
	return msg
}
