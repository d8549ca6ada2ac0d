package routes

import (
	"log/slog"
	"net/http"
)

// System collects routes and groups and builds them into a handler.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
	Groups() []Group
	Routes() []Route
}

type system struct {
	routes []Route
	groups []Group
	logger *slog.Logger
}

// New creates a route system with the specified logger.
func New(logger *slog.Logger) System {
	return &system{
		logger: logger.With("system", "routes"),
		groups: []Group{},
		routes: []Route{},
	}
}

func (s *system) Groups() []Group {
	return s.groups
}

func (s *system) Routes() []Route {
	return s.routes
}

func (s *system) RegisterRoute(route Route) {
	s.routes = append(s.routes, route)
}

func (s *system) RegisterGroup(group Group) {
	s.groups = append(s.groups, group)
}

// Build constructs an http.Handler from all registered routes and groups.
func (s *system) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range s.routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	Register(mux, "", s.groups...)

	s.logger.Debug("routes built", "routes", len(s.routes), "groups", len(s.groups))
	return mux
}
