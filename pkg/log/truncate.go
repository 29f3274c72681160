// Copyright 2024 syzkaller project authors. All rights reserved.
// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package log

import (
	"bytes"
	"fmt"
)

// Truncate leaves up to `begin` bytes at the beginning of log and
// up to `end` bytes at the end of the log.
func Truncate(log []byte, begin, end int) []byte {
	return truncate(log, begin, end, "\n\n")
}

// TruncateLine is Truncate for single-line contexts such as access log entries:
// the cut marker is separated by spaces instead of blank lines.
func TruncateLine(line string, begin, end int) string {
	return string(truncate([]byte(line), begin, end, " "))
}

func truncate(log []byte, begin, end int, sep string) []byte {
	if begin+end >= len(log) {
		return log
	}
	var b bytes.Buffer
	b.Write(log[:begin])
	if begin > 0 {
		b.WriteString(sep)
	}
	fmt.Fprintf(&b, "<<cut %d bytes out>>",
		len(log)-begin-end,
	)
	if end > 0 {
		b.WriteString(sep)
	}
	b.Write(log[len(log)-end:])
	return b.Bytes()
}
