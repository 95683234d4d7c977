package http

const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeInternalError    = "INTERNAL_ERROR"
)
