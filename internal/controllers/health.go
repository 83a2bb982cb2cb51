// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tugascript/devlogs/payloads/internal/exceptions"
)

const healthLocation string = "health"

func (c *Controllers) HealthCheck(ctx *fiber.Ctx) error {
	requestID := getRequestID(ctx)
	logger := c.buildLogger(requestID, healthLocation, "HealthCheck")
	logRequest(logger, ctx)

	if c.cache != nil {
		if err := c.cache.Ping(ctx.UserContext()); err != nil {
			logger.ErrorContext(ctx.UserContext(), "Failed to ping cache", "error", err)
			return serviceErrorResponse(logger, ctx, exceptions.NewServerError())
		}
	}

	logResponse(logger, ctx, fiber.StatusOK)
	return ctx.SendStatus(fiber.StatusOK)
}
