// Package routes describes HTTP endpoints as nested groups and builds them into
// a ServeMux using Go 1.22 method patterns.
package routes

import "net/http"

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Register adds every route in groups to mux beneath prefix.
func Register(mux *http.ServeMux, prefix string, groups ...Group) {
	for _, group := range groups {
		register(mux, prefix, group)
	}
}

func register(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := fullPrefix + route.Pattern
		if pattern == "" {
			pattern = "/"
		}
		mux.HandleFunc(route.Method+" "+pattern, route.Handler)
	}
	for _, child := range group.Children {
		register(mux, fullPrefix, child)
	}
}
