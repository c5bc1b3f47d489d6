package common

const ErrCodeNotFound = "M_NOT_FOUND"
const ErrCodeUnknownToken = "M_UNKNOWN_TOKEN"
const ErrCodeMissingToken = "M_MISSING_TOKEN"
const ErrCodeMethodNotAllowed = "M_METHOD_NOT_ALLOWED"
const ErrCodeBadRequest = "M_BAD_REQUEST"
const ErrCodeBadJson = "M_BAD_JSON"
const ErrCodeRateLimitExceeded = "M_LIMIT_EXCEEDED"
const ErrCodeConfiguration = "M_CONFIGURATION"
const ErrCodeUnknown = "M_UNKNOWN"
