// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package httpserver owns the listeners and serves a route table behind the
// access log, panic recovery, request id, metrics and compression middleware.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/leon/hellosrv/pkg/log"
	"github.com/leon/hellosrv/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAddr            = "0.0.0.0:3000"
	DefaultShutdownTimeout = 5 * time.Second
	defaultMaxLoggedURI    = 256
)

type Config struct {
	// Addr is the address the routes are served on.
	Addr string
	// MetricsAddr, if set, serves /metrics on a separate listener.
	MetricsAddr     string
	ShutdownTimeout time.Duration
	// MaxLoggedURI caps the request URI length in access log lines.
	MaxLoggedURI int
}

type Server struct {
	cfg      Config
	handler  http.Handler
	registry *prometheus.Registry

	mu              sync.Mutex
	listener        net.Listener
	metricsListener net.Listener
	serving         bool
}

func New(cfg Config, routes http.Handler) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxLoggedURI <= 0 {
		cfg.MaxLoggedURI = defaultMaxLoggedURI
	}
	s := &Server{
		cfg:      cfg,
		registry: stats.NewRegistry(),
	}
	metrics := stats.NewMetrics(s.registry)
	s.handler = handlers.CustomLoggingHandler(log.Writer(1),
		handlers.RecoveryHandler(
			handlers.RecoveryLogger(log.ErrorLogger{}),
			handlers.PrintRecoveryStack(true),
		)(withRequestID(metrics.Instrument(handlers.CompressHandler(routes)))),
		accessLogFormatter(cfg.MaxLoggedURI))
	return s
}

// Handler returns the full middleware chain in front of the routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the registry the server's metrics are exported from.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Listen binds the listeners. Requests are not accepted until Serve is called.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("already listening on %v", s.listener.Addr())
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v: %w", s.cfg.Addr, err)
	}
	if s.cfg.MetricsAddr != "" {
		mln, err := net.Listen("tcp", s.cfg.MetricsAddr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to listen on %v: %w", s.cfg.MetricsAddr, err)
		}
		s.metricsListener = mln
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil if the server is not listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) MetricsAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metricsListener == nil {
		return nil
	}
	return s.metricsListener.Addr()
}

// Serve serves on the bound listeners until ctx is cancelled or one of them fails.
// On cancellation it waits up to ShutdownTimeout for active requests and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return errors.New("serve called before listen")
	}
	if s.serving {
		s.mu.Unlock()
		return errors.New("already serving")
	}
	s.serving = true
	listeners := []net.Listener{s.listener}
	servers := []*http.Server{{Handler: s.handler}}
	if s.metricsListener != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", stats.Handler(s.registry))
		listeners = append(listeners, s.metricsListener)
		servers = append(servers, &http.Server{Handler: mux})
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.listener, s.metricsListener, s.serving = nil, nil, false
		s.mu.Unlock()
	}()

	g, ctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		ln := listeners[i]
		log.Logf(0, "serving http on %v", ln.Addr())
		g.Go(func() error {
			err := srv.Serve(ln)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("failed to serve on %v: %w", ln.Addr(), err)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Errorf("shutdown: %v", err)
				srv.Close()
			}
		}
		return nil
	})
	return g.Wait()
}
