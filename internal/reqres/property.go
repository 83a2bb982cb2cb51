// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reqres validates inbound request payloads and filters outbound
// response payloads against a declarative property schema.
package reqres

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindBoolean
	KindUUID
	KindMail
	KindDate
	KindTime
	KindDateTime
	KindObject
	KindArray
)

const nullableMarker string = "?"

var kindNames = map[Kind]string{
	KindString:   "string",
	KindNumber:   "number",
	KindBoolean:  "boolean",
	KindUUID:     "uuid",
	KindMail:     "mail",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "datetime",
	KindObject:   "object",
	KindArray:    "array",
}

var kindsByName = func() map[string]Kind {
	kinds := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		kinds[name] = k
	}
	return kinds
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) IsLeaf() bool {
	return k != KindObject && k != KindArray
}

// ParseType decodes a type tag such as "number" or "object?" into its kind
// and nullability.
func ParseType(tag string) (Kind, bool, error) {
	name, nullable := strings.CutSuffix(strings.TrimSpace(tag), nullableMarker)
	kind, ok := kindsByName[name]
	if !ok {
		return 0, false, fmt.Errorf("unknown property type %q", tag)
	}
	return kind, nullable, nil
}

// Property is one node of a schema. Object nodes carry Fields, array nodes
// carry the single Items schema shared by every element.
type Property struct {
	Kind        Kind
	Nullable    bool
	Description string
	Fields      Schema
	Items       *Property
}

// Type renders the property back into its tag form.
func (p Property) Type() string {
	if p.Nullable {
		return p.Kind.String() + nullableMarker
	}
	return p.Kind.String()
}

func (p Property) OrNull() Property {
	p.Nullable = true
	return p
}

func (p Property) Describe(description string) Property {
	p.Description = description
	return p
}

func leaf(kind Kind) Property {
	return Property{Kind: kind}
}

func String() Property   { return leaf(KindString) }
func Number() Property   { return leaf(KindNumber) }
func Boolean() Property  { return leaf(KindBoolean) }
func UUID() Property     { return leaf(KindUUID) }
func Mail() Property     { return leaf(KindMail) }
func Date() Property     { return leaf(KindDate) }
func Time() Property     { return leaf(KindTime) }
func DateTime() Property { return leaf(KindDateTime) }

func Object(fields Schema) Property {
	return Property{Kind: KindObject, Fields: fields}
}

func Array(items Property) Property {
	return Property{Kind: KindArray, Items: &items}
}

// Field binds a name to a property inside a Schema.
type Field struct {
	Name     string
	Property Property
}

func F(name string, property Property) Field {
	return Field{Name: name, Property: property}
}

// Schema is an ordered set of named properties. Walks visit fields in
// declaration order so the first reported error is deterministic.
type Schema []Field

func (s Schema) Get(name string) (*Property, bool) {
	for i := range s {
		if s[i].Name == name {
			return &s[i].Property, true
		}
	}
	return nil, false
}

func (s Schema) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Lookup resolves the property addressed by path. String segments descend
// into object fields (the schema itself at depth zero), index segments into
// the array element schema. A path that does not match the schema's shape is
// a programming error and panics.
func (s Schema) Lookup(path Path) *Property {
	if len(path) == 0 {
		panic("reqres: lookup of an empty path")
	}

	var current *Property
	for i, seg := range path {
		if seg.IsIndex() {
			if current == nil || current.Kind != KindArray || current.Items == nil {
				panic(fmt.Sprintf("reqres: %q does not address an array", path[:i+1].String()))
			}
			current = current.Items
			continue
		}

		fields := s
		if i > 0 {
			if current.Kind != KindObject {
				panic(fmt.Sprintf("reqres: %q does not address an object", path[:i].String()))
			}
			fields = current.Fields
		}

		prop, ok := fields.Get(seg.Key())
		if !ok {
			panic(fmt.Sprintf("reqres: %q is not declared", path[:i+1].String()))
		}
		current = prop
	}

	return current
}

// Validate reports schema construction mistakes: empty or duplicated field
// names, arrays without an element schema and unknown kinds.
func (s Schema) Validate() error {
	return s.validate(nil)
}

func (s Schema) validate(path Path) error {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if f.Name == "" {
			return fmt.Errorf("empty field name under %q", path.String())
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("duplicated field %q", path.Key(f.Name).String())
		}
		seen[f.Name] = struct{}{}

		if err := f.Property.validate(path.Key(f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (p Property) validate(path Path) error {
	if _, ok := kindNames[p.Kind]; !ok {
		return fmt.Errorf("%q has an unknown kind", path.String())
	}

	switch p.Kind {
	case KindObject:
		return p.Fields.validate(path)
	case KindArray:
		if p.Items == nil {
			return fmt.Errorf("array %q has no element schema", path.String())
		}
		return p.Items.validate(path.Index(0))
	default:
		return nil
	}
}
