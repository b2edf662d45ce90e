package chatgateway

import "errors"

const (
	StatusOK           = 200
	StatusUnauthorized = 401
	StatusNotFound     = 404
	StatusTooMany      = 429
)

const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeRecipientNotFound = "RECIPIENT_NOT_FOUND"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeServerError       = "SERVER_ERROR"
)

var (
	ErrUnauthorized      = errors.New(ErrCodeUnauthorized)
	ErrRecipientNotFound = errors.New(ErrCodeRecipientNotFound)
	ErrRateLimited       = errors.New(ErrCodeRateLimited)
	ErrTimeout           = errors.New(ErrCodeTimeout)
	ErrServerError       = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	StatusUnauthorized: ErrUnauthorized,
	StatusNotFound:     ErrRecipientNotFound,
	StatusTooMany:      ErrRateLimited,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
