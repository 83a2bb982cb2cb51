// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tugascript/devlogs/payloads/internal/controllers/paths"
	"github.com/tugascript/devlogs/payloads/internal/endpoints"
)

func (r *Routes) EndpointsRoutes(app *fiber.App) {
	router := v1PathRouter(app)
	router.Get(paths.EndpointsBase, r.controllers.ListEndpoints)
}

// CatalogRoutes mounts every catalog endpoint under the v1 prefix.
func (r *Routes) CatalogRoutes(app *fiber.App, catalog *endpoints.Catalog) {
	router := v1PathRouter(app)
	for i := range catalog.Endpoints() {
		endpoint := &catalog.Endpoints()[i]
		router.Add(endpoint.Method, endpoint.Path, r.controllers.EndpointHandler(endpoint))
	}
}
