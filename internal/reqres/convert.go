// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"math"
	"strings"
	"time"
)

const (
	dateTimeSeparator string = "T"
	hourMinuteLength  int    = len("15:04")
)

// ConvertValue normalizes a raw leaf value for kind or returns an
// *InputError naming path. Numerals become float64, numbers become strings
// for string leaves and the "T" separator of datetimes becomes a space.
// Container kinds are returned unchanged.
func ConvertValue(kind Kind, value any, path Path, messages Messages) (any, error) {
	converted, code := convertLeaf(kind, value)
	if code != "" {
		return nil, messages.newInputError(code, path, value)
	}
	return converted, nil
}

func convertLeaf(kind Kind, value any) (any, Code) {
	switch kind {
	case KindNumber:
		return convertNumber(value)
	case KindBoolean:
		return convertBoolean(value)
	case KindString:
		return convertString(value)
	case KindUUID:
		if !IsUUID(value) {
			return nil, CodeInvalidUUID
		}
		return value, ""
	case KindMail:
		if !IsMail(value) {
			return nil, CodeInvalidMail
		}
		return value, ""
	case KindDate:
		if !IsYYYYMMDD(value) {
			return nil, CodeInvalidDateFormat
		}
		if IsInvalidCalendarDate(value.(string)) {
			return nil, CodeInvalidDate
		}
		return value, ""
	case KindTime:
		if !IsHHMM(value) {
			return nil, CodeInvalidTimeFormat
		}
		return value, ""
	case KindDateTime:
		if !IsYYYYMMDDhhmmss(value) {
			return nil, CodeInvalidDateTimeFormat
		}
		normalized := strings.Replace(value.(string), dateTimeSeparator, " ", 1)
		if IsInvalidCalendarDate(normalized) {
			return nil, CodeInvalidDateTime
		}
		return normalized, ""
	default:
		return value, ""
	}
}

// convertNumber only yields finite numbers, validated data must stay
// encodable as JSON.
func convertNumber(value any) (any, Code) {
	var f float64
	if s, ok := value.(string); ok {
		parsed, err := parseNumber(s)
		if err != nil {
			return nil, CodeInvalidNumber
		}
		f = parsed
	} else if n, ok := asNumber(value); ok {
		f = n
	} else {
		return nil, CodeInvalidNumber
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, CodeInvalidNumber
	}
	return f, ""
}

func convertBoolean(value any) (any, Code) {
	switch v := value.(type) {
	case bool:
		return v, ""
	case string:
		switch v {
		case "true":
			return true, ""
		case "false":
			return false, ""
		default:
			return nil, CodeInvalidBoolString
		}
	}

	f, ok := asNumber(value)
	if !ok {
		return nil, CodeInvalidBool
	}
	switch f {
	case 1:
		return true, ""
	case 0:
		return false, ""
	default:
		return nil, CodeInvalidBoolNumber
	}
}

func convertString(value any) (any, Code) {
	if s, ok := value.(string); ok {
		return s, ""
	}
	if f, ok := asNumber(value); ok {
		return formatNumber(f), ""
	}
	return nil, CodeInvalidString
}

// filterValue is the non-failing counterpart of ConvertValue used for
// outbound data. It additionally renders native times for date and datetime
// leaves and truncates "hh:mm:ss" times to "hh:mm". The boolean is false
// when the value has to be dropped.
func filterValue(kind Kind, value any) (any, bool) {
	switch kind {
	case KindDate:
		if t, ok := asTime(value); ok {
			return t.Format(dateLayout), true
		}
	case KindDateTime:
		if t, ok := asTime(value); ok {
			return t.Format(dateTimeLayout), true
		}
	case KindTime:
		if IsHHMMSS(value) {
			return value.(string)[:hourMinuteLength], true
		}
	}

	converted, code := convertLeaf(kind, value)
	return converted, code == ""
}

func asTime(value any) (time.Time, bool) {
	switch t := value.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}
