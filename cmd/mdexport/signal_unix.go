//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals cancel the running batch. Engines started under the
// canceled context are killed with their process group.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
