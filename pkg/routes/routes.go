// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package routes implements an immutable (method, path) -> handler table.
//
// Paths are matched exactly: no cleaning, no trailing slash redirects and
// no case folding. Every route implicitly answers HEAD (if it has GET) and
// OPTIONS; any other method on a known path yields 405 with an Allow header.
package routes

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

type Table struct {
	paths map[string]map[string]http.HandlerFunc
	allow map[string]string
}

func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		paths: map[string]map[string]http.HandlerFunc{},
		allow: map[string]string{},
	}
	for _, route := range routes {
		if err := validate(route); err != nil {
			return nil, err
		}
		methods := t.paths[route.Path]
		if methods == nil {
			methods = map[string]http.HandlerFunc{}
			t.paths[route.Path] = methods
		}
		if methods[route.Method] != nil {
			return nil, fmt.Errorf("duplicate route %v %v", route.Method, route.Path)
		}
		methods[route.Method] = route.Handler
	}
	for path := range t.paths {
		t.allow[path] = strings.Join(t.Allowed(path), ", ")
	}
	return t, nil
}

func validate(route Route) error {
	switch {
	case route.Method == "":
		return fmt.Errorf("route %q has no method", route.Path)
	case route.Method != strings.ToUpper(route.Method):
		return fmt.Errorf("route %q: method %q must be upper case", route.Path, route.Method)
	case !strings.HasPrefix(route.Path, "/"):
		return fmt.Errorf("route path %q must start with /", route.Path)
	case route.Handler == nil:
		return fmt.Errorf("route %v %v has no handler", route.Method, route.Path)
	}
	return nil
}

func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	methods := t.paths[r.URL.Path]
	if methods == nil {
		http.NotFound(w, r)
		return
	}
	if handler := methods[r.Method]; handler != nil {
		handler(w, r)
		return
	}
	switch r.Method {
	case http.MethodHead:
		if handler := methods[http.MethodGet]; handler != nil {
			// The server discards the body of HEAD responses.
			handler(w, r)
			return
		}
	case http.MethodOptions:
		w.Header().Set("Allow", t.allow[r.URL.Path])
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Allow", t.allow[r.URL.Path])
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// Allowed returns the sorted methods accepted on path, or nil if the path is unknown.
func (t *Table) Allowed(path string) []string {
	methods := t.paths[path]
	if methods == nil {
		return nil
	}
	set := map[string]bool{http.MethodOptions: true}
	for method := range methods {
		set[method] = true
	}
	if set[http.MethodGet] {
		set[http.MethodHead] = true
	}
	var ret []string
	for method := range set {
		ret = append(ret, method)
	}
	sort.Strings(ret)
	return ret
}

// Routes returns a copy of the registered routes ordered by path, then method.
func (t *Table) Routes() []Route {
	var ret []Route
	for path, methods := range t.paths {
		for method, handler := range methods {
			ret = append(ret, Route{Method: method, Path: path, Handler: handler})
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Path != ret[j].Path {
			return ret[i].Path < ret[j].Path
		}
		return ret[i].Method < ret[j].Method
	})
	return ret
}
