package server

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Stats holds the server's live counters. All fields are updated with
// lock-free atomics; a snapshot needs no cross-field consistency
// beyond what the individual reads give, so no component ever blocks
// on the reporter.
type Stats struct {
	ConnectionsTotal atomic.Int64
	ConnectionsLive  atomic.Int64
	TablesRunning    atomic.Int64
	TablesCompleted  atomic.Int64
	TablesTerminated atomic.Int64
	TricksPlayed     atomic.Int64
}

// Snapshot renders the counters as operator-readable text.
func (s *Stats) Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Connected clients: %d\n", s.ConnectionsLive.Load())
	fmt.Fprintf(&b, "Total clients: %d\n", s.ConnectionsTotal.Load())
	fmt.Fprintf(&b, "Games in progress: %d\n", s.TablesRunning.Load())
	fmt.Fprintf(&b, "Completed games: %d\n", s.TablesCompleted.Load())
	fmt.Fprintf(&b, "Terminated games: %d\n", s.TablesTerminated.Load())
	fmt.Fprintf(&b, "Total tricks: %d\n", s.TricksPlayed.Load())
	return b.String()
}
