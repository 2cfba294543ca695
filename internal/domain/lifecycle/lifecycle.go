// Package lifecycle holds timing constants shared by components with start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and backend clients.
const DefaultTimeout = 10 * time.Second
