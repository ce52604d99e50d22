package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// Handlers map domain sentinel errors onto responses through this type.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 409, 422)
	Message string // safe to show to the client
	Err     error  // underlying cause, never serialized
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a status code and message to an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
