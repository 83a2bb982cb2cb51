// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package controllers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tugascript/devlogs/payloads/internal/endpoints"
	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

const endpointsLocation string = "endpoints"

var listEndpointsQuery = reqres.Schema{
	reqres.F("method", reqres.String().OrNull()),
}

var endpointListResponse = reqres.Schema{
	reqres.F("items", reqres.Array(reqres.Object(reqres.Schema{
		reqres.F("name", reqres.String()),
		reqres.F("method", reqres.String()),
		reqres.F("path", reqres.String()),
		reqres.F("description", reqres.String().OrNull()),
	}))),
	reqres.F("count", reqres.Number()),
}

type endpointSummary struct {
	Name        string  `json:"name"`
	Method      string  `json:"method"`
	Path        string  `json:"path"`
	Description *string `json:"description"`
}

func summarize(endpoint *endpoints.Endpoint) endpointSummary {
	summary := endpointSummary{
		Name:   endpoint.Name,
		Method: endpoint.Method,
		Path:   endpoint.Path,
	}
	if endpoint.Description != "" {
		description := endpoint.Description
		summary.Description = &description
	}
	return summary
}

// ListEndpoints lists the catalog, optionally filtered by HTTP method.
func (c *Controllers) ListEndpoints(ctx *fiber.Ctx) error {
	requestID := getRequestID(ctx)
	logger := c.buildLogger(requestID, endpointsLocation, "ListEndpoints")
	logRequest(logger, ctx)

	raw, err := reqres.FromFiber(ctx)
	if err != nil {
		return parseRequestErrorResponse(logger, ctx, err)
	}

	req := reqres.NewRequest(listEndpointsQuery)
	if err := req.Attach(raw); err != nil {
		return inputErrorResponse(logger, ctx, err)
	}

	method, _ := req.Data()["method"].(string)
	method = strings.ToUpper(method)
	items := make([]endpointSummary, 0, c.catalog.Len())
	for i := range c.catalog.Endpoints() {
		endpoint := &c.catalog.Endpoints()[i]
		if method != "" && endpoint.Method != method {
			continue
		}
		items = append(items, summarize(endpoint))
	}

	res := reqres.NewResponse(endpointListResponse).
		Set("items", items).
		Set("count", len(items))

	logResponse(logger, ctx, fiber.StatusOK)
	return ctx.Status(fiber.StatusOK).JSON(res.Data())
}

// EndpointHandler serves one catalog endpoint: the request is validated
// against its request schema, then the validated data and path parameters
// are rendered through its response schema.
func (c *Controllers) EndpointHandler(endpoint *endpoints.Endpoint) fiber.Handler {
	status := fiber.StatusOK
	if endpoint.Method == http.MethodPost {
		status = fiber.StatusCreated
	}

	return func(ctx *fiber.Ctx) error {
		requestID := getRequestID(ctx)
		logger := c.buildLogger(requestID, endpointsLocation, endpoint.Name)
		logRequest(logger, ctx)

		raw, err := reqres.FromFiber(ctx)
		if err != nil {
			return parseRequestErrorResponse(logger, ctx, err)
		}

		req := endpoint.NewRequest()
		if err := req.Attach(raw); err != nil {
			return inputErrorResponse(logger, ctx, err)
		}
		logger.DebugContext(ctx.UserContext(), "Validated request", "data", req.Data())

		res := endpoint.NewResponse().SetAll(req.Data())
		for key, value := range req.Params() {
			res.Set(key, value)
		}

		logResponse(logger, ctx, status)
		return ctx.Status(status).JSON(res.Data())
	}
}
