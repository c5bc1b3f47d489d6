package api

import "github.com/ridgeline-tours/asset-repo/common"

type EmptyResponse struct{}

type DoNotCacheResponse struct {
	Payload interface{}
}

type ErrorResponse struct {
	Code    string `json:"errcode"`
	Message string `json:"error"`
}

func InternalServerError(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, message}
}

func ConfigurationError(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeConfiguration, message}
}

func MethodNotAllowed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeMethodNotAllowed, "Method Not Allowed"}
}

func RateLimitReached() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeRateLimitExceeded, "Rate Limited"}
}

func NotFoundError() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeNotFound, "Not found"}
}

func AuthFailed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknownToken, "Authentication Failed"}
}

func MissingToken() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeMissingToken, "no token provided (required)"}
}

func BadRequest(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeBadRequest, message}
}

func BadJson(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeBadJson, message}
}
