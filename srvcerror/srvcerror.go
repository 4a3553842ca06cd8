package srvcerror

import "net/http"

// Error is returned by services. Only the public message ever reaches
// the client; the debug error stays in server logs.
type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	httpStatus int
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

// Unwrap exposes the debug error to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) HttpStatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

func (e *Error) SetHttpStatusCode(code int) *Error {
	e.httpStatus = code
	return e
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

const (
	ErrCodeInternalServerError = "internal_server_error"
	ErrCodeUnauthorized        = "unauthorized"
)

func ErrInternalSE() *Error {
	return New(
		ErrCodeInternalServerError,
		http.StatusText(http.StatusInternalServerError),
	).SetHttpStatusCode(http.StatusInternalServerError)
}

func ErrUnauthorized() *Error {
	return New(
		ErrCodeUnauthorized,
		http.StatusText(http.StatusUnauthorized),
	).SetHttpStatusCode(http.StatusUnauthorized)
}
