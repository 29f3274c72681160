// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log provides leveled logging on top of the standard logger.
// Messages with verbosity above the configured level are dropped.
package log

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"strings"
	"sync/atomic"
)

var (
	verbosity atomic.Int32
	logger    = golog.New(os.Stderr, "", golog.LstdFlags|golog.Lmicroseconds)
	exit      = os.Exit
)

// SetVerbosity sets the maximum level passed to Logf that still gets printed.
func SetVerbosity(v int) {
	verbosity.Store(int32(v))
}

func V(level int) bool {
	return level <= int(verbosity.Load())
}

// SetOutput redirects all messages to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetName prefixes all subsequent messages with name.
func SetName(name string) {
	logger.SetPrefix(name + " ")
}

func Logf(v int, msg string, args ...interface{}) {
	if !V(v) {
		return
	}
	logger.Output(2, fmt.Sprintf(msg, args...))
}

func Errorf(msg string, args ...interface{}) {
	logger.Output(2, "ERROR: "+fmt.Sprintf(msg, args...))
}

func Fatalf(msg string, args ...interface{}) {
	logger.Output(2, "FATAL: "+fmt.Sprintf(msg, args...))
	exit(1)
}

// Writer returns a writer that logs every Write as one message at verbosity v.
func Writer(v int) io.Writer {
	return levelWriter(v)
}

type levelWriter int

func (lw levelWriter) Write(data []byte) (int, error) {
	if V(int(lw)) {
		logger.Output(2, strings.TrimSuffix(string(data), "\n"))
	}
	return len(data), nil
}

// ErrorLogger prints through Errorf for APIs that want a Println method.
type ErrorLogger struct{}

func (ErrorLogger) Println(args ...interface{}) {
	logger.Output(2, "ERROR: "+fmt.Sprint(args...))
}
