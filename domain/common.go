package domain

const (
	RoleUser = "user"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID     = NewValidationError("failed to parse UUID")
	ErrTokenNotFound = NewAuthError("failed to token not found")
	ErrTokenInvalid  = NewAuthError("token invalid")
	ErrTokenExpired  = NewAuthError("token expired")
)
