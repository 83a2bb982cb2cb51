// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"errors"
	"strings"
)

// Code identifies a validation failure. Codes are stable regardless of the
// message templates in use.
type Code string

const (
	CodeInvalidPathParamUUID Code = "990"

	CodeRequiredQueryArray Code = "000"
	CodeRequired           Code = "001"
	CodeInvalidObject      Code = "002"
	CodeInvalidArray       Code = "003"
	CodeUnnecessaryInput   Code = "004"

	CodeNestedRequired         Code = "101"
	CodeNestedInvalidObject    Code = "102"
	CodeNestedInvalidArray     Code = "103"
	CodeNestedUnnecessaryInput Code = "104"

	CodeInvalidNumber         Code = "201"
	CodeInvalidBoolNumber     Code = "211"
	CodeInvalidBoolString     Code = "212"
	CodeInvalidBool           Code = "213"
	CodeInvalidString         Code = "221"
	CodeInvalidUUID           Code = "231"
	CodeInvalidMail           Code = "241"
	CodeInvalidDateFormat     Code = "251"
	CodeInvalidDate           Code = "252"
	CodeInvalidTimeFormat     Code = "261"
	CodeInvalidDateTimeFormat Code = "271"
	CodeInvalidDateTime       Code = "272"
	CodeElementRequired       Code = "301"
)

const (
	propertyPlaceholder string = "{property}"
	valuePlaceholder    string = "{value}"
)

// Messages holds the templates used to build error messages. "{property}"
// is replaced by the dotted path and "{value}" by the offending value.
type Messages struct {
	InvalidPathParamUUID string
	Required             string
	UnnecessaryInput     string
	InvalidObject        string
	InvalidArray         string
	InvalidNumber        string
	InvalidBool          string
	InvalidString        string
	InvalidUUID          string
	InvalidMail          string
	InvalidDate          string
	InvalidTime          string
	InvalidDateTime      string
}

func DefaultMessages() Messages {
	return Messages{
		InvalidPathParamUUID: "The {property} in the URL must be a UUID. ({value})",
		Required:             "{property} is required.",
		UnnecessaryInput:     "{property} is unnecessary input. ",
		InvalidObject:        "{property} must be of type Object. ({value})",
		InvalidArray:         "{property} must be of type Array. ({value})",
		InvalidNumber:        "{property} must be of type number. ({value})",
		InvalidBool:          "{property} must be of type bool or a string with true, false, or a number with 0, 1. ({value})",
		InvalidString:        "{property} must be of type string. ({value})",
		InvalidUUID:          "{property} must be a UUID. ({value})",
		InvalidMail:          "{property} must be an email. ({value})",
		InvalidDate:          "{property} must be a string in \"YYYY-MM-DD\" format and a valid date. ({value})",
		InvalidTime:          "{property} must be a string in \"hh:mi\" format and a valid time. ({value})",
		InvalidDateTime:      "{property} must be a string in \"YYYY-MM-DD hh:mi:ss\" or \"YYYY-MM-DDThh:mi:ss\" format and a valid date and time. ({value})",
	}
}

// Merge returns m with every non-empty template of overrides applied.
func (m Messages) Merge(overrides Messages) Messages {
	pick := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}

	return Messages{
		InvalidPathParamUUID: pick(m.InvalidPathParamUUID, overrides.InvalidPathParamUUID),
		Required:             pick(m.Required, overrides.Required),
		UnnecessaryInput:     pick(m.UnnecessaryInput, overrides.UnnecessaryInput),
		InvalidObject:        pick(m.InvalidObject, overrides.InvalidObject),
		InvalidArray:         pick(m.InvalidArray, overrides.InvalidArray),
		InvalidNumber:        pick(m.InvalidNumber, overrides.InvalidNumber),
		InvalidBool:          pick(m.InvalidBool, overrides.InvalidBool),
		InvalidString:        pick(m.InvalidString, overrides.InvalidString),
		InvalidUUID:          pick(m.InvalidUUID, overrides.InvalidUUID),
		InvalidMail:          pick(m.InvalidMail, overrides.InvalidMail),
		InvalidDate:          pick(m.InvalidDate, overrides.InvalidDate),
		InvalidTime:          pick(m.InvalidTime, overrides.InvalidTime),
		InvalidDateTime:      pick(m.InvalidDateTime, overrides.InvalidDateTime),
	}
}

func (m *Messages) template(code Code) string {
	switch code {
	case CodeInvalidPathParamUUID:
		return m.InvalidPathParamUUID
	case CodeRequiredQueryArray, CodeRequired, CodeNestedRequired, CodeElementRequired:
		return m.Required
	case CodeInvalidObject, CodeNestedInvalidObject:
		return m.InvalidObject
	case CodeInvalidArray, CodeNestedInvalidArray:
		return m.InvalidArray
	case CodeUnnecessaryInput, CodeNestedUnnecessaryInput:
		return m.UnnecessaryInput
	case CodeInvalidNumber:
		return m.InvalidNumber
	case CodeInvalidBoolNumber, CodeInvalidBoolString, CodeInvalidBool:
		return m.InvalidBool
	case CodeInvalidString:
		return m.InvalidString
	case CodeInvalidUUID:
		return m.InvalidUUID
	case CodeInvalidMail:
		return m.InvalidMail
	case CodeInvalidDateFormat, CodeInvalidDate:
		return m.InvalidDate
	case CodeInvalidTimeFormat:
		return m.InvalidTime
	case CodeInvalidDateTimeFormat, CodeInvalidDateTime:
		return m.InvalidDateTime
	default:
		return "{property} is invalid. ({value})"
	}
}

// Format fills the template of code with the path and the stringified value.
func (m *Messages) Format(code Code, path Path, value any) string {
	return strings.NewReplacer(
		propertyPlaceholder, path.String(),
		valuePlaceholder, stringify(value),
	).Replace(m.template(code))
}

// InputError is the single error produced by a failed request validation.
type InputError struct {
	Code    Code
	Path    Path
	Value   any
	Message string
}

func (m *Messages) newInputError(code Code, path Path, value any) *InputError {
	return &InputError{
		Code:    code,
		Path:    path,
		Value:   value,
		Message: m.Format(code, path, value),
	}
}

func (e *InputError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// IsInputError reports whether err carries an *InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

var ErrNotAttached = errors.New("reqres: request data must be attached with Attach before it is accessed")
