// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxMultipartMemory int64 = 32 << 20

var ErrMalformedBody = errors.New("reqres: request body must be a JSON object or a form")

// multiValues accumulates repeated keys of a query string or form. A key
// seen once keeps a string value, repeated keys collect into []any.
type multiValues map[string]any

func (m multiValues) add(key, value string) {
	switch current := m[key].(type) {
	case nil:
		m[key] = value
	case string:
		m[key] = []any{current, value}
	case []any:
		m[key] = append(current, value)
	}
}

func fromValues(values map[string][]string) map[string]any {
	m := make(multiValues, len(values))
	for key, vals := range values {
		for _, v := range vals {
			m.add(key, v)
		}
	}
	return m
}

func decodeJSONBody(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return make(map[string]any), nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Join(ErrMalformedBody, err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, ErrMalformedBody
	}
	return obj, nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

// FromFiber reads a RawRequest out of a Fiber context. JSON, urlencoded and
// multipart bodies are decoded, other content types leave the body empty.
func FromFiber(ctx *fiber.Ctx) (RawRequest, error) {
	query := make(multiValues)
	ctx.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.add(string(key), string(value))
	})

	body := make(map[string]any)
	if !IsQueryMethod(ctx.Method()) {
		switch mediaType(ctx.Get(fiber.HeaderContentType)) {
		case fiber.MIMEApplicationJSON:
			decoded, err := decodeJSONBody(ctx.Body())
			if err != nil {
				return RawRequest{}, err
			}
			body = decoded
		case fiber.MIMEApplicationForm:
			form := make(multiValues)
			ctx.Request().PostArgs().VisitAll(func(key, value []byte) {
				form.add(string(key), string(value))
			})
			body = form
		case fiber.MIMEMultipartForm:
			form, err := ctx.MultipartForm()
			if err != nil {
				return RawRequest{}, errors.Join(ErrMalformedBody, err)
			}
			body = fromValues(form.Value)
		}
	}

	return RawRequest{
		Method:        ctx.Method(),
		Query:         query,
		Body:          body,
		Headers:       Headers(ctx.GetReqHeaders()),
		Params:        ctx.AllParams(),
		RemoteAddress: ctx.IP(),
	}, nil
}

// FromHTTP reads a RawRequest out of a net/http request. The standard mux
// cannot enumerate path wildcards, so params are passed in by the caller.
func FromHTTP(r *http.Request, params map[string]string) (RawRequest, error) {
	body := make(map[string]any)
	if !IsQueryMethod(r.Method) && r.Body != nil {
		switch mediaType(r.Header.Get(fiber.HeaderContentType)) {
		case fiber.MIMEApplicationJSON:
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				return RawRequest{}, err
			}
			decoded, err := decodeJSONBody(raw)
			if err != nil {
				return RawRequest{}, err
			}
			body = decoded
		case fiber.MIMEApplicationForm:
			if err := r.ParseForm(); err != nil {
				return RawRequest{}, errors.Join(ErrMalformedBody, err)
			}
			body = fromValues(r.PostForm)
		case fiber.MIMEMultipartForm:
			if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
				return RawRequest{}, errors.Join(ErrMalformedBody, err)
			}
			body = fromValues(r.MultipartForm.Value)
		}
	}

	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	return RawRequest{
		Method:        strings.ToUpper(r.Method),
		Query:         fromValues(r.URL.Query()),
		Body:          body,
		Headers:       Headers(r.Header.Clone()),
		Params:        params,
		RemoteAddress: remote,
	}, nil
}
