// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package httpserver

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/leon/hellosrv/pkg/log"
)

const (
	RequestIDHeader = "X-Request-Id"
	maxRequestIDLen = 128
)

// withRequestID tags every request and its response with an id.
// Ids supplied by the client are kept unless they are too long.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func accessLogFormatter(maxURI int) handlers.LogFormatter {
	return func(w io.Writer, params handlers.LogFormatterParams) {
		host, _, err := net.SplitHostPort(params.Request.RemoteAddr)
		if err != nil {
			host = params.Request.RemoteAddr
		}
		uri := log.TruncateLine(params.URL.RequestURI(), maxURI/2, maxURI/2)
		fmt.Fprintf(w, "%v %v %q %v %v %vus id=%v\n",
			host, params.Request.Method, uri, params.StatusCode, params.Size,
			time.Since(params.TimeStamp).Microseconds(), params.Request.Header.Get(RequestIDHeader))
	}
}
