// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

// Response collects internal values and renders them through the schema.
// Keys whose value does not fit are omitted, array elements become nil.
type Response struct {
	schema Schema
	raw    map[string]any
}

func NewResponse(schema Schema) *Response {
	return &Response{
		schema: schema,
		raw:    make(map[string]any),
	}
}

func (r *Response) Set(key string, value any) *Response {
	r.raw[key] = value
	return r
}

// SetAt writes value at a nested path, creating intermediate objects and
// arrays as needed.
func (r *Response) SetAt(path Path, value any) *Response {
	if len(path) == 0 || path[0].IsIndex() {
		panic("reqres: SetAt needs a path starting with a field name")
	}

	r.raw = Set(r.raw, path, value).(map[string]any)
	return r
}

// SetAll copies every entry of values, which may be a map or a struct.
func (r *Response) SetAll(values any) *Response {
	obj, ok := asObject(values)
	if !ok {
		return r
	}
	for k, v := range obj {
		r.raw[k] = v
	}
	return r
}

// Data returns the filtered tree.
func (r *Response) Data() map[string]any {
	return Filter(r.schema, r.raw)
}

// Filter renders data through schema without failing. Non-object data
// yields an empty tree.
func Filter(schema Schema, data any) map[string]any {
	obj, ok := asObject(data)
	if !ok {
		obj = make(map[string]any)
	}

	w := walker{schema: schema, policy: lenientPolicy{}}
	out, err := w.walkObject(nil, obj, rootScope)
	if err != nil {
		return make(map[string]any)
	}
	return out
}
