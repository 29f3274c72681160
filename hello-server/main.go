// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// hello-server answers GET / and GET /hello with fixed text.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/leon/hellosrv/pkg/hello"
	"github.com/leon/hellosrv/pkg/httpserver"
	"github.com/leon/hellosrv/pkg/log"
)

var (
	flagHTTP     = flag.String("http", httpserver.DefaultAddr, "address to serve the routes on")
	flagMetrics  = flag.String("metrics", "", "address to serve /metrics on (disabled if empty)")
	flagShutdown = flag.Duration("shutdown_timeout", httpserver.DefaultShutdownTimeout,
		"how long to wait for active requests on exit")
	flagV = flag.Int("vv", 0, "verbosity")
)

func main() {
	flag.Parse()
	log.SetVerbosity(*flagV)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := httpserver.Config{
		Addr:            *flagHTTP,
		MetricsAddr:     *flagMetrics,
		ShutdownTimeout: *flagShutdown,
	}
	if err := run(ctx, cfg, nil); err != nil {
		log.Fatalf("%v", err)
	}
	log.Logf(0, "stopped")
}

// run binds the listeners, reports the bound address on ready and serves until ctx is done.
func run(ctx context.Context, cfg httpserver.Config, ready func(net.Addr)) error {
	table, err := hello.Routes()
	if err != nil {
		return fmt.Errorf("failed to build routes: %w", err)
	}
	srv := httpserver.New(cfg, table)
	if err := srv.Listen(); err != nil {
		return err
	}
	if ready != nil {
		ready(srv.Addr())
	}
	return srv.Serve(ctx)
}
