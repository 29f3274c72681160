// Copyright 2022 syzkaller project authors. All rights reserved.
// Copyright 2026 hellosrv project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package testutil

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// IterCount is the number of iterations randomized tests should run.
func IterCount() int {
	iters := 1000
	if testing.Short() {
		iters /= 10
	}
	if RaceEnabled {
		iters /= 10
	}
	return iters
}

// RandSource returns a time-seeded source; HELLOSRV_SEED overrides the seed.
func RandSource(t *testing.T) rand.Source {
	seed := time.Now().UnixNano()
	if fixed := os.Getenv("HELLOSRV_SEED"); fixed != "" {
		seed, _ = strconv.ParseInt(fixed, 0, 64)
	}
	if os.Getenv("CI") != "" {
		seed = 0
	}
	t.Logf("seed=%v", seed)
	return rand.NewSource(seed)
}

const pathAlphabet = "/abcdefhlloHELLO.-_"

// RandPath returns a random request path that always starts with a slash.
func RandPath(r *rand.Rand) string {
	b := []byte{'/'}
	for n := r.Intn(8); n > 0; n-- {
		b = append(b, pathAlphabet[r.Intn(len(pathAlphabet))])
	}
	return string(b)
}
