package controllers

import (
	"log/slog"

	"github.com/tugascript/devlogs/payloads/internal/endpoints"
	"github.com/tugascript/devlogs/payloads/internal/providers/cache"
	"github.com/tugascript/devlogs/payloads/internal/utils"
)

type Controllers struct {
	logger  *slog.Logger
	catalog *endpoints.Catalog
	cache   *cache.Cache
}

// NewControllers builds the handlers. cc may be nil when no redis is
// configured.
func NewControllers(
	logger *slog.Logger,
	catalog *endpoints.Catalog,
	cc *cache.Cache,
) *Controllers {
	return &Controllers{
		logger:  logger.With(utils.BaseLayer, utils.ControllersLogLayer),
		catalog: catalog,
		cache:   cc,
	}
}
