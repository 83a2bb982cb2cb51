// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"errors"
	"sort"
)

// scope selects the error codes of the level being walked.
type scope struct {
	required Code
	object   Code
	array    Code
	unknown  Code
	root     bool
	element  bool
}

var (
	rootScope = scope{
		required: CodeRequired,
		object:   CodeInvalidObject,
		array:    CodeInvalidArray,
		unknown:  CodeUnnecessaryInput,
		root:     true,
	}
	nestedScope = scope{
		required: CodeNestedRequired,
		object:   CodeNestedInvalidObject,
		array:    CodeNestedInvalidArray,
		unknown:  CodeNestedUnnecessaryInput,
	}
	elementScope = scope{
		required: CodeElementRequired,
		object:   CodeNestedInvalidObject,
		array:    CodeNestedInvalidArray,
		unknown:  CodeNestedUnnecessaryInput,
		element:  true,
	}
)

// errOmit drops the current node from the output instead of failing the walk.
var errOmit = errors.New("reqres: omit node")

// policy decides what the walker does at every point where the request and
// response directions differ.
type policy interface {
	isEmpty(p *Property, raw any, sc scope) bool
	missing(p *Property, path Path, raw any, present bool, sc scope) (any, error)
	reject(code Code, path Path, raw any) error
	unknown(code Code, path Path, raw any) error
	wrapScalar(sc scope) bool
	leaf(p *Property, path Path, raw any) (any, error)
}

type walker struct {
	schema Schema
	policy policy
}

func (w *walker) walkObject(path Path, raw map[string]any, sc scope) (map[string]any, error) {
	fields := w.schema
	if len(path) > 0 {
		fields = w.schema.Lookup(path).Fields
	}

	out := make(map[string]any, len(fields))
	for i := range fields {
		name, prop := fields[i].Name, &fields[i].Property
		fieldPath := path.Key(name)

		var result any
		var err error
		if value, present := raw[name]; !present || w.policy.isEmpty(prop, value, sc) {
			result, err = w.policy.missing(prop, fieldPath, value, present, sc)
		} else {
			result, err = w.walkNode(prop, fieldPath, value, sc)
		}

		if errors.Is(err, errOmit) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[name] = result
	}

	for _, key := range sortedKeys(raw) {
		if fields.Has(key) {
			continue
		}
		if err := w.policy.unknown(sc.unknown, path.Key(key), raw[key]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (w *walker) walkArray(path Path, raw []any) ([]any, error) {
	items := w.schema.Lookup(path).Items

	out := make([]any, 0, len(raw))
	for i, value := range raw {
		itemPath := path.Index(i)

		var result any
		var err error
		if w.policy.isEmpty(items, value, elementScope) {
			result, err = w.policy.missing(items, itemPath, value, true, elementScope)
		} else {
			result, err = w.walkNode(items, itemPath, value, elementScope)
		}

		if errors.Is(err, errOmit) {
			result, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}

	return out, nil
}

func (w *walker) walkNode(p *Property, path Path, raw any, sc scope) (any, error) {
	switch p.Kind {
	case KindObject:
		obj, ok := asObject(raw)
		if !ok {
			return nil, w.policy.reject(sc.object, path, raw)
		}

		out, err := w.walkObject(path, obj, nestedScope)
		if err != nil {
			return nil, err
		}
		return out, nil
	case KindArray:
		arr, ok := asArray(raw)
		if !ok {
			if !w.policy.wrapScalar(sc) {
				return nil, w.policy.reject(sc.array, path, raw)
			}
			arr = []any{raw}
		}

		out, err := w.walkArray(path, arr)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return w.policy.leaf(p, path, raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// strictPolicy validates inbound data: the first violation aborts the walk
// with an *InputError.
type strictPolicy struct {
	messages Messages
	query    bool
}

// Field level treats an empty string as missing for every type, array
// elements only for non-string types.
func (s *strictPolicy) isEmpty(p *Property, raw any, sc scope) bool {
	if raw == nil {
		return true
	}
	return raw == "" && (!sc.element || p.Kind != KindString)
}

func (s *strictPolicy) missing(p *Property, path Path, raw any, present bool, sc scope) (any, error) {
	if sc.root && s.query && p.Kind == KindArray && !p.Nullable {
		return s.missingQueryArray(p, path, raw, present)
	}
	if p.Nullable {
		return nil, nil
	}
	return nil, s.messages.newInputError(sc.required, path, "")
}

// missingQueryArray handles "?arr=" and absent array parameters, which a
// query string cannot distinguish from an empty list.
func (s *strictPolicy) missingQueryArray(p *Property, path Path, raw any, present bool) (any, error) {
	if !p.Items.Nullable {
		return nil, s.messages.newInputError(CodeRequiredQueryArray, path.Index(0), "")
	}
	if !present {
		return []any{}, nil
	}
	if p.Items.Kind == KindString {
		return []any{raw}, nil
	}
	return []any{nil}, nil
}

func (s *strictPolicy) reject(code Code, path Path, raw any) error {
	return s.messages.newInputError(code, path, raw)
}

func (s *strictPolicy) unknown(code Code, path Path, raw any) error {
	return s.messages.newInputError(code, path, raw)
}

// A single query value for an array parameter arrives as a scalar.
func (s *strictPolicy) wrapScalar(sc scope) bool {
	return sc.root && s.query
}

func (s *strictPolicy) leaf(p *Property, path Path, raw any) (any, error) {
	return ConvertValue(p.Kind, raw, path, s.messages)
}

// lenientPolicy filters outbound data: nodes that do not fit the schema are
// dropped or nulled and the walk never fails.
type lenientPolicy struct{}

func (lenientPolicy) isEmpty(p *Property, raw any, _ scope) bool {
	if raw == nil {
		return true
	}
	return raw == "" && p.Kind != KindString
}

func (lenientPolicy) missing(p *Property, _ Path, _ any, present bool, _ scope) (any, error) {
	if present && p.Nullable {
		return nil, nil
	}
	return nil, errOmit
}

func (lenientPolicy) reject(Code, Path, any) error {
	return errOmit
}

func (lenientPolicy) unknown(Code, Path, any) error {
	return nil
}

func (lenientPolicy) wrapScalar(scope) bool {
	return false
}

func (lenientPolicy) leaf(p *Property, _ Path, raw any) (any, error) {
	value, ok := filterValue(p.Kind, raw)
	if !ok {
		return nil, errOmit
	}
	return value, nil
}
