// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	uuidValidatorTag          string = "lcuuid"
	mailValidatorTag          string = "mail"
	dateValidatorTag          string = "yyyymmdd"
	dateTimeValidatorTag      string = "yyyymmddhhmmss"
	hourMinuteValidatorTag    string = "hhmm"
	hourMinuteSecValidatorTag string = "hhmmss"

	dateLayout     string = "2006-01-02"
	dateTimeLayout string = "2006-01-02 15:04:05"
)

var (
	uuidRegex          = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	mailRegex          = regexp.MustCompile(`^[a-zA-Z0-9_%+-]+([.][a-zA-Z0-9_%+-]+)*@[a-zA-Z0-9]+([-.]?[a-zA-Z0-9]+)*\.[a-zA-Z]{2,}$`)
	dateRegex          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}$`)
	hourMinuteRegex    = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)
	hourMinuteSecRegex = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)
)

func regexValidator(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		input, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return re.MatchString(input)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	vld := validator.New()
	tags := map[string]*regexp.Regexp{
		uuidValidatorTag:          uuidRegex,
		mailValidatorTag:          mailRegex,
		dateValidatorTag:          dateRegex,
		dateTimeValidatorTag:      dateTimeRegex,
		hourMinuteValidatorTag:    hourMinuteRegex,
		hourMinuteSecValidatorTag: hourMinuteSecRegex,
	}
	for tag, re := range tags {
		if err := vld.RegisterValidation(tag, regexValidator(re)); err != nil {
			panic(err)
		}
	}
	return vld
}

func matchesTag(value any, tag string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}

	return validate.Var(s, tag) == nil
}

// IsNumber reports whether value is a runtime number or a non-blank numeral.
func IsNumber(value any) bool {
	if s, ok := value.(string); ok {
		_, err := parseNumber(s)
		return err == nil
	}

	_, ok := asNumber(value)
	return ok
}

// IsUUID accepts only the canonical lowercase 8-4-4-4-12 form.
func IsUUID(value any) bool {
	return matchesTag(value, uuidValidatorTag)
}

func IsMail(value any) bool {
	return matchesTag(value, mailValidatorTag)
}

// IsYYYYMMDD checks the format only, not whether the day exists.
func IsYYYYMMDD(value any) bool {
	return matchesTag(value, dateValidatorTag)
}

// IsYYYYMMDDhhmmss accepts either a space or a "T" between date and time.
func IsYYYYMMDDhhmmss(value any) bool {
	return matchesTag(value, dateTimeValidatorTag)
}

func IsHHMM(value any) bool {
	return matchesTag(value, hourMinuteValidatorTag)
}

func IsHHMMSS(value any) bool {
	return matchesTag(value, hourMinuteSecValidatorTag)
}

// IsInvalidCalendarDate reports true when a "YYYY-MM-DD" or
// "YYYY-MM-DD[ T]hh:mm:ss" string does not name a real instant, e.g.
// 2023-02-30 or 2023-01-01 24:00:00. Unparsable input is invalid as well.
func IsInvalidCalendarDate(value string) bool {
	value = strings.Replace(value, "T", " ", 1)

	layout := dateTimeLayout
	if len(value) == len(dateLayout) {
		layout = dateLayout
	}

	return validate.Var(value, "datetime="+layout) != nil
}
