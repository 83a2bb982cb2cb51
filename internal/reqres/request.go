// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

const (
	bearerPrefix        string = "Bearer "
	authorizationHeader string = "Authorization"
)

// Headers maps header names to their values. Lookups ignore the case of
// the name.
type Headers map[string][]string

// Get returns the first value of name or an empty string.
func (h Headers) Get(name string) string {
	values := h.Values(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (h Headers) Values(name string) []string {
	if values, ok := h[name]; ok {
		return values
	}
	if values, ok := h[http.CanonicalHeaderKey(name)]; ok {
		return values
	}
	for key, values := range h {
		if strings.EqualFold(key, name) {
			return values
		}
	}
	return nil
}

// RawRequest is everything a Request needs from the hosting framework.
// Query and Body hold the decoded payloads, repeated query or form keys
// appear as []any.
type RawRequest struct {
	Method        string
	Query         map[string]any
	Body          map[string]any
	Headers       Headers
	Params        map[string]string
	RemoteAddress string
}

// IsQueryMethod reports whether method carries its payload in the query
// string instead of the body.
func IsQueryMethod(method string) bool {
	return strings.EqualFold(method, http.MethodGet) || strings.EqualFold(method, http.MethodDelete)
}

// Source returns the payload validated for the request method.
func (r RawRequest) Source() map[string]any {
	if IsQueryMethod(r.Method) {
		return r.Query
	}
	return r.Body
}

type Option func(*Request)

// WithMessages overrides the default message templates. Empty fields keep
// their default.
func WithMessages(overrides Messages) Option {
	return func(r *Request) {
		r.messages = r.messages.Merge(overrides)
	}
}

// Request validates one inbound request against a schema. A Request is not
// safe for concurrent use and is meant to live for a single request.
type Request struct {
	schema        Schema
	messages      Messages
	attached      bool
	data          map[string]any
	params        map[string]string
	headers       Headers
	remoteAddress string
}

func NewRequest(schema Schema, opts ...Option) *Request {
	r := &Request{
		schema:   schema,
		messages: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach validates the payload of raw, then the path parameters. The first
// violation is returned as an *InputError and leaves the Request detached.
func (r *Request) Attach(raw RawRequest) error {
	w := walker{
		schema: r.schema,
		policy: &strictPolicy{
			messages: r.messages,
			query:    IsQueryMethod(raw.Method),
		},
	}

	data, err := w.walkObject(nil, raw.Source(), rootScope)
	if err != nil {
		return err
	}
	if err := r.checkParams(raw.Params); err != nil {
		return err
	}

	params := raw.Params
	if params == nil {
		params = make(map[string]string)
	}
	headers := raw.Headers
	if headers == nil {
		headers = make(Headers)
	}

	r.data = data
	r.params = params
	r.headers = headers
	r.remoteAddress = raw.RemoteAddress
	r.attached = true
	return nil
}

// checkParams requires every path parameter whose name contains "id" or
// "Id" to be a UUID.
func (r *Request) checkParams(params map[string]string) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.Contains(key, "id") && !strings.Contains(key, "Id") {
			continue
		}
		if value := params[key]; !IsUUID(value) {
			return r.messages.newInputError(CodeInvalidPathParamUUID, KeyPath(key), value)
		}
	}
	return nil
}

func (r *Request) mustBeAttached() {
	if !r.attached {
		panic(ErrNotAttached)
	}
}

// Data returns the validated tree. It panics before a successful Attach.
func (r *Request) Data() map[string]any {
	r.mustBeAttached()
	return r.data
}

func (r *Request) Value(path Path) (any, bool) {
	return Get(r.Data(), path)
}

// Bind copies the validated tree into dst through its JSON representation.
func (r *Request) Bind(dst any) error {
	data, err := json.Marshal(r.Data())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (r *Request) Params() map[string]string {
	r.mustBeAttached()
	return r.params
}

func (r *Request) Headers() Headers {
	r.mustBeAttached()
	return r.headers
}

// Authorization returns the bearer token of the Authorization header.
func (r *Request) Authorization() (string, bool) {
	if token, ok := strings.CutPrefix(r.Headers().Get(authorizationHeader), bearerPrefix); ok {
		return token, true
	}
	return "", false
}

func (r *Request) RemoteAddress() string {
	return r.remoteAddress
}
