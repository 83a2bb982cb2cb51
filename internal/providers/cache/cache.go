// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cache

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	fiberRedis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/tugascript/devlogs/payloads/internal/utils"
)

const logLayer string = utils.ProvidersLogLayer + "/cache"

// Cache shares the rate limiter counters between instances through Redis.
type Cache struct {
	logger  *slog.Logger
	storage *fiberRedis.Storage
}

func NewCache(logger *slog.Logger, storage *fiberRedis.Storage) *Cache {
	return &Cache{
		logger:  logger.With(utils.BaseLayer, logLayer),
		storage: storage,
	}
}

// NewRedisCache connects to url. The returned Cache is nil when url is
// empty, which callers treat as "use in-memory storage".
func NewRedisCache(ctx context.Context, logger *slog.Logger, url string) *Cache {
	if url == "" {
		logger.InfoContext(ctx, "No redis url configured, using in-memory storage")
		return nil
	}

	logger.InfoContext(ctx, "Building redis storage...")
	c := NewCache(logger, fiberRedis.New(fiberRedis.Config{
		URL: url,
	}))
	logger.InfoContext(ctx, "Finished building redis storage")
	return c
}

func (c *Cache) Storage() fiber.Storage {
	return c.storage
}

func (c *Cache) Client() redis.UniversalClient {
	return c.storage.Conn()
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.Client().Ping(ctx).Err(); err != nil {
		c.logger.ErrorContext(ctx, "Failed to ping redis", "error", err)
		return err
	}
	return nil
}

func (c *Cache) Close() error {
	return c.storage.Close()
}
