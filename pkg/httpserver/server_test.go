// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/leon/hellosrv/pkg/hello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloRoutes(t *testing.T) http.Handler {
	table, err := hello.Routes()
	require.NoError(t, err)
	return table
}

func startServer(t *testing.T, cfg Config, routes http.Handler) *Server {
	srv := New(cfg, routes)
	require.NoError(t, srv.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return srv
}

func get(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServe(t *testing.T) {
	srv := startServer(t, Config{Addr: "127.0.0.1:0"}, helloRoutes(t))
	base := "http://" + srv.Addr().String()

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/", http.StatusOK, "Welcome!"},
		{"/hello", http.StatusOK, "Hello Leon, this is your Flask server running on port 5000!"},
		{"/missing", http.StatusNotFound, "404 page not found\n"},
		{"/Hello", http.StatusNotFound, "404 page not found\n"},
		{"/hello/", http.StatusNotFound, "404 page not found\n"},
		{"/metrics", http.StatusNotFound, "404 page not found\n"},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			code, body := get(t, base+test.path)
			assert.Equal(t, test.code, code)
			assert.Equal(t, test.body, body)
		})
	}

	resp, err := http.Post(base+"/", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, HEAD, OPTIONS", resp.Header.Get("Allow"))

	resp, err = http.Head(base + "/hello")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestListenAddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv := New(Config{Addr: busy.Addr().String()}, helloRoutes(t))
	err = srv.Listen()
	assert.ErrorContains(t, err, "failed to listen on "+busy.Addr().String())
	assert.Nil(t, srv.Addr())
	assert.Error(t, srv.Serve(context.Background()))
}

func TestListenMetricsAddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv := New(Config{Addr: "127.0.0.1:0", MetricsAddr: busy.Addr().String()}, helloRoutes(t))
	assert.Error(t, srv.Listen())
	assert.Nil(t, srv.Addr())
	assert.Nil(t, srv.MetricsAddr())
}

func TestListenTwice(t *testing.T) {
	srv := New(Config{Addr: "127.0.0.1:0"}, helloRoutes(t))
	require.NoError(t, srv.Listen())
	assert.Error(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Serve(ctx))
	assert.Nil(t, srv.Addr())
}

func TestServeStops(t *testing.T) {
	srv := New(Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, helloRoutes(t))
	require.NoError(t, srv.Listen())
	addr := srv.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	code, _ := get(t, "http://"+addr+"/")
	assert.Equal(t, http.StatusOK, code)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Nil(t, srv.Addr())
	_, err := net.DialTimeout("tcp", addr, time.Second)
	assert.Error(t, err)
}

func TestMetricsListener(t *testing.T) {
	srv := startServer(t, Config{Addr: "127.0.0.1:0", MetricsAddr: "127.0.0.1:0"}, helloRoutes(t))
	base := "http://" + srv.Addr().String()
	get(t, base+"/")
	get(t, base+"/hello")
	get(t, base+"/missing")

	code, body := get(t, "http://"+srv.MetricsAddr().String()+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `hellosrv_http_requests_total{code="200",method="get"} 2`)
	assert.Contains(t, body, `hellosrv_http_requests_total{code="404",method="get"} 1`)
}
