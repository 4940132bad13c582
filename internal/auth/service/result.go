package service

// Caller-safe failure messages. These are returned to clients verbatim.
const (
	MsgAccountNotFound = "Account not found."
	MsgWrongPassword   = "Wrong password."
	MsgAccountDisabled = "Account is not available."
	MsgCannotFindUser  = "Cannot find user."
	MsgInvalidToken    = "Invalid token."
	MsgEmailRegistered = "Email already registered."
	MsgEmailEmpty      = "Email must not be empty."
	MsgPasswordEmpty   = "Password must not be empty."
	MsgRoleNotFound    = "Role not found."
	MsgSameRole        = "Cannot apply the same role for account."
	MsgPasswordChanged = "Password changed."
	MsgRoleChanged     = "Role changed."
	MsgTokenRevoked    = "Token revoked."
	MsgAccountCreated  = "Account created."
)

// Result carries the outcome of a use case whose failure is an expected
// business outcome rather than a fault. Technical errors are returned
// alongside as a plain error and never folded into a Result.
type Result[T any] struct {
	Success bool
	Message string
	Value   T
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Success: true, Value: value}
}

func OkWithMessage[T any](value T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Value: value}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// rejection aborts a transaction for a business reason. It never escapes the
// service; callers turn it back into a failed Result.
type rejection struct {
	message string
}

func (r rejection) Error() string { return r.message }

func reject(message string) error { return rejection{message: message} }
