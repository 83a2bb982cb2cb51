// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/tugascript/devlogs/payloads/internal/config"
	"github.com/tugascript/devlogs/payloads/internal/controllers"
	"github.com/tugascript/devlogs/payloads/internal/endpoints"
	"github.com/tugascript/devlogs/payloads/internal/providers/cache"
	"github.com/tugascript/devlogs/payloads/internal/server/routes"
)

type FiberServer struct {
	*fiber.App
	routes  *routes.Routes
	catalog *endpoints.Catalog
	cache   *cache.Cache
}

func New(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.Config,
) *FiberServer {
	logger.InfoContext(ctx, "Loading endpoints catalog...", "path", cfg.EndpointsPath())
	catalog, err := endpoints.Load(cfg.EndpointsPath())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load endpoints catalog", "error", err)
		panic(err)
	}
	logger.InfoContext(ctx, "Finished loading endpoints catalog", "endpoints", catalog.Len())

	cc := cache.NewRedisCache(ctx, logger, cfg.RedisURL())

	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: cfg.ServiceName(),
			AppName:      cfg.ServiceName(),
		}),
		routes:  routes.NewRoutes(controllers.NewControllers(logger, catalog, cc)),
		catalog: catalog,
		cache:   cc,
	}

	logger.InfoContext(ctx, "Loading middleware...")
	server.Use(helmet.New())
	server.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	rateLimitCfg := cfg.RateLimiterConfig()
	limiterCfg := limiter.Config{
		Max:               int(rateLimitCfg.Max()),
		Expiration:        rateLimitCfg.Expiration(),
		LimiterMiddleware: limiter.SlidingWindow{},
	}
	if cc != nil {
		limiterCfg.Storage = cc.Storage()
	}
	server.Use(limiter.New(limiterCfg))
	server.App.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Accept,Authorization,Content-Type",
		AllowCredentials: false,
		MaxAge:           300,
	}))
	logger.Info("Finished loading common middlewares")

	return server
}

func (s *FiberServer) Catalog() *endpoints.Catalog {
	return s.catalog
}

// Close releases the redis connection, if any.
func (s *FiberServer) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
