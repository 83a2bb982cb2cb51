package exceptions

import (
	"errors"

	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

const (
	StatusNotFound             string = "NotFound"
	StatusUnknown              string = "InternalServerError"
	StatusValidation           string = "Validation"
	StatusUnsupportedMediaType string = "UnsupportedMediaType"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(err *ServiceError) ErrorResponse {
	switch err.Code {
	case CodeNotFound:
		return ErrorResponse{
			Code:    StatusNotFound,
			Message: err.Message,
		}
	case CodeValidation:
		return ErrorResponse{
			Code:    StatusValidation,
			Message: err.Message,
		}
	case CodeUnsupportedMediaType:
		return ErrorResponse{
			Code:    StatusUnsupportedMediaType,
			Message: err.Message,
		}
	case CodeUnknown, CodeServerError:
		return ErrorResponse{
			Code:    StatusUnknown,
			Message: StatusUnknown,
		}
	default:
		return ErrorResponse{
			Code:    StatusUnknown,
			Message: err.Message,
		}
	}
}

type FieldError struct {
	Param   string `json:"param"`
	Message string `json:"message"`
	Value   any    `json:"value"`
	Code    string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location string       `json:"location"`
	Fields   []FieldError `json:"fields,omitempty"`
}

const (
	ValidationResponseMessage        string = "Invalid request"
	ValidationResponseLocationBody   string = "body"
	ValidationResponseLocationQuery  string = "query"
	ValidationResponseLocationParams string = "params"
)

// InputErrorLocation tells where the offending value of err came from for a
// request sent with method.
func InputErrorLocation(err *reqres.InputError, method string) string {
	if err.Code == reqres.CodeInvalidPathParamUUID {
		return ValidationResponseLocationParams
	}
	if reqres.IsQueryMethod(method) {
		return ValidationResponseLocationQuery
	}
	return ValidationResponseLocationBody
}

// NewInputErrorResponse maps a failed request validation to the validation
// response body. Errors that are not input errors yield an empty response.
func NewInputErrorResponse(err error, method string) ValidationErrorResponse {
	var inputErr *reqres.InputError
	if !errors.As(err, &inputErr) {
		return NewEmptyValidationErrorResponse(ValidationResponseLocationBody)
	}

	return NewValidationErrorResponse(
		InputErrorLocation(inputErr, method),
		[]FieldError{{
			Param:   inputErr.Path.String(),
			Message: inputErr.Message,
			Value:   inputErr.Value,
			Code:    string(inputErr.Code),
		}},
	)
}

func NewValidationErrorResponse(location string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:     StatusValidation,
		Message:  ValidationResponseMessage,
		Fields:   fields,
		Location: location,
	}
}

func NewEmptyValidationErrorResponse(location string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:     StatusValidation,
		Message:  ValidationResponseMessage,
		Location: location,
	}
}

func NewRequestErrorStatus(code string) int {
	switch code {
	case CodeValidation:
		return 400
	case CodeNotFound:
		return 404
	case CodeUnknown, CodeServerError:
		return 500
	case CodeUnsupportedMediaType:
		return 415
	default:
		return 500
	}
}
