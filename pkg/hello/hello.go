// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package hello serves the two fixed greeting pages.
package hello

import (
	"io"
	"net/http"

	"github.com/leon/hellosrv/pkg/routes"
)

const (
	WelcomeText = "Welcome!"
	// HelloText mentions port 5000 regardless of the port actually served.
	HelloText = "Hello Leon, this is your Flask server running on port 5000!"
)

func Welcome(w http.ResponseWriter, r *http.Request) {
	writeText(w, WelcomeText)
}

func Hello(w http.ResponseWriter, r *http.Request) {
	writeText(w, HelloText)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

// Routes returns the application's route table.
func Routes() (*routes.Table, error) {
	return routes.NewTable(
		routes.Route{Method: http.MethodGet, Path: "/", Handler: Welcome},
		routes.Route{Method: http.MethodGet, Path: "/hello", Handler: Hello},
	)
}
