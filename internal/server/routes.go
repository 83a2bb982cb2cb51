package server

func (s *FiberServer) RegisterFiberRoutes() {
	s.routes.HealthRoutes(s.App)
	s.routes.EndpointsRoutes(s.App)
	s.routes.CatalogRoutes(s.App, s.catalog)
}
