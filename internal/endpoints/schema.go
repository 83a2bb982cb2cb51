// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package endpoints

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

const (
	propertyKeyType        string = "type"
	propertyKeyDescription string = "description"
	propertyKeyProperties  string = "properties"
	propertyKeyItems       string = "items"
)

// decodeSchema turns an ordered YAML mapping of field name to property into
// a schema. A property is either a bare type tag ("number?") or a mapping
// with type, description and properties (objects) or items (arrays).
func decodeSchema(raw any, location string) (reqres.Schema, error) {
	if raw == nil {
		return reqres.Schema{}, nil
	}

	fields, ok := raw.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping of fields, got %T", location, raw)
	}

	schema := make(reqres.Schema, 0, len(fields))
	for _, item := range fields {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%s: field names must be strings, got %v", location, item.Key)
		}

		prop, err := decodeProperty(item.Value, location+"."+name)
		if err != nil {
			return nil, err
		}
		schema = append(schema, reqres.F(name, prop))
	}

	return schema, nil
}

func decodeProperty(raw any, location string) (reqres.Property, error) {
	switch value := raw.(type) {
	case string:
		kind, nullable, err := reqres.ParseType(value)
		if err != nil {
			return reqres.Property{}, fmt.Errorf("%s: %w", location, err)
		}
		if !kind.IsLeaf() {
			return reqres.Property{}, fmt.Errorf("%s: %s needs a mapping with its child schema", location, value)
		}
		return reqres.Property{Kind: kind, Nullable: nullable}, nil
	case yaml.MapSlice:
		return decodePropertyMapping(value, location)
	default:
		return reqres.Property{}, fmt.Errorf("%s: expected a type tag or a mapping, got %T", location, raw)
	}
}

func decodePropertyMapping(mapping yaml.MapSlice, location string) (reqres.Property, error) {
	var tag, description string
	var properties, items any

	for _, item := range mapping {
		key, _ := item.Key.(string)
		switch key {
		case propertyKeyType:
			s, ok := item.Value.(string)
			if !ok {
				return reqres.Property{}, fmt.Errorf("%s: type must be a string", location)
			}
			tag = s
		case propertyKeyDescription:
			description = fmt.Sprint(item.Value)
		case propertyKeyProperties:
			properties = item.Value
		case propertyKeyItems:
			items = item.Value
		default:
			return reqres.Property{}, fmt.Errorf("%s: unknown property key %v", location, item.Key)
		}
	}

	kind, nullable, err := reqres.ParseType(tag)
	if err != nil {
		return reqres.Property{}, fmt.Errorf("%s: %w", location, err)
	}

	prop := reqres.Property{Kind: kind, Nullable: nullable, Description: description}
	switch kind {
	case reqres.KindObject:
		if items != nil {
			return reqres.Property{}, fmt.Errorf("%s: objects take properties, not items", location)
		}
		fields, err := decodeSchema(properties, location)
		if err != nil {
			return reqres.Property{}, err
		}
		prop.Fields = fields
	case reqres.KindArray:
		child := items
		if child == nil {
			child = properties
		}
		if child == nil {
			return reqres.Property{}, fmt.Errorf("%s: arrays need an items schema", location)
		}
		element, err := decodeProperty(child, location+".0")
		if err != nil {
			return reqres.Property{}, err
		}
		prop.Items = &element
	default:
		if properties != nil || items != nil {
			return reqres.Property{}, fmt.Errorf("%s: %s takes no child schema", location, tag)
		}
	}

	return prop, nil
}
