package exceptions

const (
	CodeValidation           string = "VALIDATION"
	CodeNotFound             string = "NOT_FOUND"
	CodeUnknown              string = "UNKNOWN"
	CodeServerError          string = "SERVER_ERROR"
	CodeUnsupportedMediaType string = "UNSUPPORTED_MEDIA_TYPE"
)

const (
	MessageNotFound string = "Resource not found"
	MessageUnknown  string = "Something went wrong"
)

type ServiceError struct {
	Code    string
	Message string
}

func NewError(code string, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

func NewNotFoundError() *ServiceError {
	return NewError(CodeNotFound, MessageNotFound)
}

func NewValidationError(message string) *ServiceError {
	return NewError(CodeValidation, message)
}

func NewServerError() *ServiceError {
	return NewError(CodeServerError, MessageUnknown)
}

func NewUnsupportedMediaTypeError(message string) *ServiceError {
	return NewError(CodeUnsupportedMediaType, message)
}

func (e *ServiceError) Error() string {
	return e.Message
}
