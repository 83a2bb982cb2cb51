// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package endpoints loads the catalog of endpoint contracts served by the
// API. Every endpoint declares a request and a response schema.
package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

type messagesFile struct {
	InvalidPathParamUUID string `yaml:"invalid_path_param_uuid"`
	Required             string `yaml:"required"`
	UnnecessaryInput     string `yaml:"unnecessary_input"`
	InvalidObject        string `yaml:"invalid_object"`
	InvalidArray         string `yaml:"invalid_array"`
	InvalidNumber        string `yaml:"invalid_number"`
	InvalidBool          string `yaml:"invalid_bool"`
	InvalidString        string `yaml:"invalid_string"`
	InvalidUUID          string `yaml:"invalid_uuid"`
	InvalidMail          string `yaml:"invalid_mail"`
	InvalidDate          string `yaml:"invalid_date"`
	InvalidTime          string `yaml:"invalid_time"`
	InvalidDateTime      string `yaml:"invalid_datetime"`
}

func (m messagesFile) toMessages() reqres.Messages {
	return reqres.Messages{
		InvalidPathParamUUID: m.InvalidPathParamUUID,
		Required:             m.Required,
		UnnecessaryInput:     m.UnnecessaryInput,
		InvalidObject:        m.InvalidObject,
		InvalidArray:         m.InvalidArray,
		InvalidNumber:        m.InvalidNumber,
		InvalidBool:          m.InvalidBool,
		InvalidString:        m.InvalidString,
		InvalidUUID:          m.InvalidUUID,
		InvalidMail:          m.InvalidMail,
		InvalidDate:          m.InvalidDate,
		InvalidTime:          m.InvalidTime,
		InvalidDateTime:      m.InvalidDateTime,
	}
}

type endpointFile struct {
	Name        string       `yaml:"name"`
	Method      string       `yaml:"method"`
	Path        string       `yaml:"path"`
	Description string       `yaml:"description"`
	Messages    messagesFile `yaml:"messages"`
	Request     any          `yaml:"request"`
	Response    any          `yaml:"response"`
}

type catalogFile struct {
	Messages  messagesFile   `yaml:"messages"`
	Endpoints []endpointFile `yaml:"endpoints"`
}

// Endpoint is one contract of the catalog.
type Endpoint struct {
	Name        string
	Method      string
	Path        string
	Description string
	Request     reqres.Schema
	Response    reqres.Schema
	Messages    reqres.Messages
}

// NewRequest returns a validator bound to the endpoint schema and messages.
func (e *Endpoint) NewRequest() *reqres.Request {
	return reqres.NewRequest(e.Request, reqres.WithMessages(e.Messages))
}

func (e *Endpoint) NewResponse() *reqres.Response {
	return reqres.NewResponse(e.Response)
}

type Catalog struct {
	endpoints []Endpoint
	byName    map[string]int
}

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading endpoints catalog: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML catalog. Type tags are resolved once here, field
// order follows the document.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("decoding endpoints catalog: %w", err)
	}

	defaults := reqres.DefaultMessages().Merge(file.Messages.toMessages())
	catalog := &Catalog{
		endpoints: make([]Endpoint, 0, len(file.Endpoints)),
		byName:    make(map[string]int, len(file.Endpoints)),
	}
	routes := make(map[string]string, len(file.Endpoints))

	for i, ef := range file.Endpoints {
		endpoint, err := buildEndpoint(ef, defaults)
		if err != nil {
			return nil, fmt.Errorf("endpoint %d: %w", i, err)
		}
		if _, ok := catalog.byName[endpoint.Name]; ok {
			return nil, fmt.Errorf("endpoint %q is declared twice", endpoint.Name)
		}

		route := endpoint.Method + " " + endpoint.Path
		if other, ok := routes[route]; ok {
			return nil, fmt.Errorf("endpoints %q and %q share the route %s", other, endpoint.Name, route)
		}

		routes[route] = endpoint.Name
		catalog.byName[endpoint.Name] = len(catalog.endpoints)
		catalog.endpoints = append(catalog.endpoints, endpoint)
	}

	return catalog, nil
}

func buildEndpoint(ef endpointFile, defaults reqres.Messages) (Endpoint, error) {
	name := strings.TrimSpace(ef.Name)
	if name == "" {
		return Endpoint{}, fmt.Errorf("name is required")
	}

	method := strings.ToUpper(strings.TrimSpace(ef.Method))
	if _, ok := allowedMethods[method]; !ok {
		return Endpoint{}, fmt.Errorf("%s: unsupported method %q", name, ef.Method)
	}
	if !strings.HasPrefix(ef.Path, "/") {
		return Endpoint{}, fmt.Errorf("%s: path must start with a slash", name)
	}

	request, err := decodeSchema(ef.Request, name+".request")
	if err != nil {
		return Endpoint{}, err
	}
	if err := request.Validate(); err != nil {
		return Endpoint{}, fmt.Errorf("%s.request: %w", name, err)
	}

	response, err := decodeSchema(ef.Response, name+".response")
	if err != nil {
		return Endpoint{}, err
	}
	if err := response.Validate(); err != nil {
		return Endpoint{}, fmt.Errorf("%s.response: %w", name, err)
	}

	return Endpoint{
		Name:        name,
		Method:      method,
		Path:        ef.Path,
		Description: ef.Description,
		Request:     request,
		Response:    response,
		Messages:    defaults.Merge(ef.Messages.toMessages()),
	}, nil
}

func (c *Catalog) Endpoints() []Endpoint {
	return c.endpoints
}

func (c *Catalog) Find(name string) (*Endpoint, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.endpoints[i], true
}

func (c *Catalog) Len() int {
	return len(c.endpoints)
}
